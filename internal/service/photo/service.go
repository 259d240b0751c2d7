package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"gram-seva/internal/config"
)

var (
	ErrNotAnImage = errors.New("only image uploads are accepted")
	ErrTooLarge   = errors.New("photo exceeds the maximum allowed size")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Service stores issue and resolution photos in MinIO under
// date-partitioned paths and resolves their public URLs.
type Service interface {
	Upload(ctx context.Context, prefix, mimeType string, size int64, reader io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string)
	URL(storagePath string) string
}

type service struct {
	client *minio.Client
	cfg    *config.Config
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, prefix, mimeType string, size int64, reader io.Reader) (string, error) {
	if !allowedMimeTypes[mimeType] {
		return "", ErrNotAnImage
	}
	if size <= 0 || size > s.cfg.MaxPhotoSizeBytes {
		return "", ErrTooLarge
	}

	storagePath := fmt.Sprintf("%s/%s/%s", prefix, time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return storagePath, nil
}

// Remove is best effort, used to undo an upload when the owning row
// fails to persist.
func (s *service) Remove(ctx context.Context, storagePath string) {
	_ = s.client.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) URL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
