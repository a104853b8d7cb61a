package repository

import (
	"sync"

	"github.com/nihalcreates/pixagen-backend/internal/models"
)

// GalleryStore holds each user's generated images for the lifetime of their
// session. It is deliberately in-memory only: the gallery is discarded on
// logout and on restart.
type GalleryStore struct {
	mu     sync.RWMutex
	images map[uint][]models.GeneratedImage
}

func NewGalleryStore() *GalleryStore {
	return &GalleryStore{
		images: make(map[uint][]models.GeneratedImage),
	}
}

// Add prepends an image so listings come back newest first.
func (s *GalleryStore) Add(userID uint, image models.GeneratedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[userID] = append([]models.GeneratedImage{image}, s.images[userID]...)
}

func (s *GalleryStore) List(userID uint) []models.GeneratedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := s.images[userID]
	out := make([]models.GeneratedImage, len(images))
	copy(out, images)
	return out
}

func (s *GalleryStore) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, userID)
}
