package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("test-key", srv.URL, "gemini-2.5-flash-image", time.Minute, zap.NewNop())
	return client, srv
}

func imageResponse(data string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"inlineData": map[string]string{"mimeType": "image/png", "data": data}},
					},
				},
			},
		},
	})
	return string(body)
}

func TestGenerateDecodesInlineImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"text":"a red fox"`)
		assert.Contains(t, string(body), `"responseModalities":["IMAGE"]`)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, imageResponse(encoded))
	})

	image, err := client.Generate(context.Background(), "a red fox")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image.Bytes)
	assert.Equal(t, "image/png", image.Mime)
}

func TestGenerateNoImagePart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"sorry, no image"}]}}]}`)
	})

	_, err := client.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestGenerateUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded"}}`)
	})

	_, err := client.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoImage)
	assert.Contains(t, err.Error(), "status=429")
}

func TestEditStripsDataURLPrefix(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("out"))

	var received struct {
		Contents []struct {
			Parts []part `json:"parts"`
		} `json:"contents"`
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, imageResponse(encoded))
	})

	source := "data:image/png;base64,aGVsbG8="
	_, err := client.Edit(context.Background(), source, "make it blue")
	require.NoError(t, err)

	require.Len(t, received.Contents, 1)
	parts := received.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "aGVsbG8=", parts[0].InlineData.Data)
	assert.Equal(t, "make it blue", parts[1].Text)
}
