package models

import "time"

const (
	ImageKindGenerated = "generated"
	ImageKindEdited    = "edited"
)

// GeneratedImage lives only in the session gallery; it is never persisted and
// is discarded on logout.
type GeneratedImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Prompt    string    `json:"prompt"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type EditImageRequest struct {
	Image  string `json:"image" validate:"required"` // base64-encoded source image
	Prompt string `json:"prompt" validate:"required"`
}
