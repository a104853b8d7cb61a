package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	calls int
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (*gemini.Image, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &gemini.Image{Bytes: []byte("png-bytes"), Mime: "image/png"}, nil
}

func (g *fakeGenerator) Edit(ctx context.Context, imageBase64, prompt string) (*gemini.Image, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &gemini.Image{Bytes: []byte("edited-bytes"), Mime: "image/png"}, nil
}

type fakeStorage struct {
	uploads int
	err     error
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.uploads++
	return s.err
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error { return nil }

func (s *fakeStorage) GetPublicURL(key string) string { return "https://cdn.test/" + key }

func newImageService(t *testing.T, db *gorm.DB, gen *fakeGenerator, store *fakeStorage, cfg *config.Config) (*ImageService, *repository.GalleryStore) {
	t.Helper()

	if cfg == nil {
		cfg = newTestConfig()
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = "test-key"
	}

	gallery := repository.NewGalleryStore()
	svc := NewImageService(gen, store, repository.NewUserRepository(db), gallery, cfg, zap.NewNop())
	return svc, gallery
}

func TestGenerateDebitsOneCredit(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	store := &fakeStorage{}
	svc, gallery := newImageService(t, db, gen, store, nil)

	user := createUser(t, db, "artist@example.com", 3)

	image, err := svc.Generate(context.Background(), user.ID, models.RoleUser, models.GenerateImageRequest{Prompt: "a red fox"})
	require.NoError(t, err)

	assert.Equal(t, 2, userCredits(t, db, user.ID))
	assert.Equal(t, models.ImageKindGenerated, image.Kind)
	assert.Equal(t, "a red fox", image.Prompt)
	assert.Contains(t, image.URL, "https://cdn.test/")
	assert.Len(t, gallery.List(user.ID), 1)
}

func TestGenerateInsufficientCredits(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	store := &fakeStorage{}
	svc, gallery := newImageService(t, db, gen, store, nil)

	user := createUser(t, db, "broke@example.com", 0)

	_, err := svc.Generate(context.Background(), user.ID, models.RoleUser, models.GenerateImageRequest{Prompt: "x"})
	assert.ErrorIs(t, err, models.ErrInsufficientCredits)

	// The gateway is never reached and nothing enters the gallery
	assert.Zero(t, gen.calls)
	assert.Empty(t, gallery.List(user.ID))
	assert.Equal(t, 0, userCredits(t, db, user.ID))
}

func TestGenerateFailureKeepsCreditByDefault(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{err: errors.New("upstream down")}
	store := &fakeStorage{}
	svc, gallery := newImageService(t, db, gen, store, nil)

	user := createUser(t, db, "artist@example.com", 3)

	_, err := svc.Generate(context.Background(), user.ID, models.RoleUser, models.GenerateImageRequest{Prompt: "x"})
	require.Error(t, err)

	assert.Equal(t, 2, userCredits(t, db, user.ID))
	assert.Empty(t, gallery.List(user.ID))
	assert.Zero(t, store.uploads)
}

func TestGenerateFailureRefundsWhenConfigured(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{err: errors.New("upstream down")}
	store := &fakeStorage{}
	cfg := newTestConfig()
	cfg.RefundOnFailure = true
	svc, _ := newImageService(t, db, gen, store, cfg)

	user := createUser(t, db, "artist@example.com", 3)

	_, err := svc.Generate(context.Background(), user.ID, models.RoleUser, models.GenerateImageRequest{Prompt: "x"})
	require.Error(t, err)

	assert.Equal(t, 3, userCredits(t, db, user.ID))
}

func TestAdminGeneratesWithoutDebit(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	store := &fakeStorage{}
	svc, gallery := newImageService(t, db, gen, store, nil)

	_, err := svc.Generate(context.Background(), 0, models.RoleAdmin, models.GenerateImageRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Len(t, gallery.List(0), 1)
}

func TestMissingAPIKeyCostsNothing(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	store := &fakeStorage{}

	cfg := newTestConfig()
	gallery := repository.NewGalleryStore()
	svc := NewImageService(gen, store, repository.NewUserRepository(db), gallery, cfg, zap.NewNop())

	user := createUser(t, db, "artist@example.com", 3)

	_, err := svc.Generate(context.Background(), user.ID, models.RoleUser, models.GenerateImageRequest{Prompt: "x"})
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
	assert.Equal(t, 3, userCredits(t, db, user.ID))
	assert.Zero(t, gen.calls)
}

func TestEditTagsImageAsEdited(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	store := &fakeStorage{}
	svc, _ := newImageService(t, db, gen, store, nil)

	user := createUser(t, db, "artist@example.com", 1)

	image, err := svc.Edit(context.Background(), user.ID, models.RoleUser, models.EditImageRequest{
		Image:  "aGVsbG8=",
		Prompt: "make it blue",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ImageKindEdited, image.Kind)
	assert.Equal(t, 0, userCredits(t, db, user.ID))
}
