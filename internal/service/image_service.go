package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/pkg/gemini"
	"github.com/nihalcreates/pixagen-backend/pkg/storage"
	"go.uber.org/zap"
)

// ImageGenerator is the boundary to the external generation capability.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*gemini.Image, error)
	Edit(ctx context.Context, imageBase64, prompt string) (*gemini.Image, error)
}

type ImageService struct {
	generator ImageGenerator
	store     storage.ObjectStorage
	userRepo  *repository.UserRepository
	gallery   *repository.GalleryStore
	cfg       *config.Config
	log       *zap.Logger
}

func NewImageService(
	generator ImageGenerator,
	store storage.ObjectStorage,
	userRepo *repository.UserRepository,
	gallery *repository.GalleryStore,
	cfg *config.Config,
	log *zap.Logger,
) *ImageService {
	return &ImageService{
		generator: generator,
		store:     store,
		userRepo:  userRepo,
		gallery:   gallery,
		cfg:       cfg,
		log:       log,
	}
}

// Generate creates an image from a prompt. One credit is taken before the
// gateway is called; a failed call keeps the credit unless RefundOnFailure
// is configured.
func (s *ImageService) Generate(ctx context.Context, userID uint, role string, req models.GenerateImageRequest) (*models.GeneratedImage, error) {
	return s.run(ctx, userID, role, models.ImageKindGenerated, req.Prompt, func(ctx context.Context) (*gemini.Image, error) {
		return s.generator.Generate(ctx, req.Prompt)
	})
}

// Edit applies a text instruction to an uploaded image. Same credit rules
// as Generate.
func (s *ImageService) Edit(ctx context.Context, userID uint, role string, req models.EditImageRequest) (*models.GeneratedImage, error) {
	return s.run(ctx, userID, role, models.ImageKindEdited, req.Prompt, func(ctx context.Context) (*gemini.Image, error) {
		return s.generator.Edit(ctx, req.Image, req.Prompt)
	})
}

func (s *ImageService) Gallery(userID uint) []models.GeneratedImage {
	return s.gallery.List(userID)
}

func (s *ImageService) run(ctx context.Context, userID uint, role, kind, prompt string, call func(context.Context) (*gemini.Image, error)) (*models.GeneratedImage, error) {
	// The credential check happens before any debit so a misconfigured
	// gateway never costs anyone a credit.
	if s.cfg.Gemini.APIKey == "" {
		return nil, models.ErrMissingAPIKey
	}

	// Admins generate without spending credits.
	if role != models.RoleAdmin {
		debited, err := s.userRepo.DebitOneCredit(userID)
		if err != nil {
			return nil, err
		}
		if !debited {
			return nil, models.ErrInsufficientCredits
		}
	}

	result, err := call(ctx)
	if err != nil {
		s.refundOnFailure(userID, role)
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	key := fmt.Sprintf("images/%d/%s.png", userID, uuid.NewString())
	if err := s.store.Upload(ctx, key, result.Bytes, result.Mime); err != nil {
		s.refundOnFailure(userID, role)
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	image := models.GeneratedImage{
		ID:        uuid.NewString(),
		URL:       s.store.GetPublicURL(key),
		Prompt:    prompt,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	s.gallery.Add(userID, image)

	s.log.Info("image created",
		zap.Uint("user_id", userID),
		zap.String("kind", kind),
		zap.String("key", key))

	return &image, nil
}

// Failed attempts consume the credit by default; the refund is opt-in via
// config.
func (s *ImageService) refundOnFailure(userID uint, role string) {
	if !s.cfg.RefundOnFailure || role == models.RoleAdmin {
		return
	}
	if err := s.userRepo.AddCredits(userID, 1); err != nil {
		s.log.Error("failed to refund credit", zap.Uint("user_id", userID), zap.Error(err))
	}
}
