package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoImage means the API answered successfully but returned no inline image
// part. It is a distinct condition from transport or status errors.
var ErrNoImage = errors.New("gemini response contains no image data")

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

// Image is a decoded result from the generation API.
type Image struct {
	Bytes []byte
	Mime  string
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces an image from a text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (*Image, error) {
	return c.generateContent(ctx, []part{{Text: prompt}})
}

// Edit applies a text instruction to a base64-encoded source image. A data URL
// prefix on the source is stripped before sending.
func (c *Client) Edit(ctx context.Context, imageBase64, prompt string) (*Image, error) {
	data := stripDataURLPrefix(imageBase64)

	parts := []part{
		{InlineData: &inlineData{MimeType: "image/png", Data: data}},
		{Text: prompt},
	}
	return c.generateContent(ctx, parts)
}

func (c *Client) generateContent(ctx context.Context, parts []part) (*Image, error) {
	var reqBody generateRequest
	reqBody.Contents = []content{{Parts: parts}}
	reqBody.GenerationConfig.ResponseModalities = []string{"IMAGE"}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post gemini: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.log != nil {
			c.log.Error("gemini request failed",
				zap.Int("status", resp.StatusCode),
				zap.String("model", c.model),
				zap.ByteString("body", truncate(rawBody, 512)))
		}
		return nil, fmt.Errorf("gemini error: status=%d body=%s", resp.StatusCode, truncate(rawBody, 512))
	}

	var genResp generateResponse
	if err := json.Unmarshal(rawBody, &genResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if genResp.Error != nil {
		return nil, fmt.Errorf("gemini error: code=%d msg=%s", genResp.Error.Code, genResp.Error.Message)
	}

	for _, cand := range genResp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			decoded, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode image data: %w", err)
			}
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return &Image{Bytes: decoded, Mime: mime}, nil
		}
	}

	return nil, ErrNoImage
}

func stripDataURLPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ","); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func truncate(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	return b[:limit]
}
