package storage

import "context"

type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
