package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type PhotoService struct {
	mock.Mock
}

func (m *PhotoService) Upload(ctx context.Context, prefix, mimeType string, size int64, reader io.Reader) (string, error) {
	args := m.Called(ctx, prefix, mimeType, size, reader)
	return args.String(0), args.Error(1)
}

func (m *PhotoService) Remove(ctx context.Context, storagePath string) {
	m.Called(ctx, storagePath)
}

func (m *PhotoService) URL(storagePath string) string {
	args := m.Called(storagePath)
	return args.String(0)
}
