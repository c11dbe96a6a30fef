package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"reviewbox/internal/action"
	"reviewbox/internal/blob"
	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
)

// UploadResult carries the public URL of a stored file.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadService stores user-submitted images in the blob store.
type UploadService interface {
	UploadImage(ctx context.Context, user *model.User, filename string, body io.Reader, size int64, contentType string) (*UploadResult, error)
}

type uploadService struct {
	uploader blob.Uploader
}

// NewUploadService creates a new upload service.
func NewUploadService(uploader blob.Uploader) UploadService {
	return &uploadService{uploader: uploader}
}

// UploadImage stores the file under a collision-free name and returns its
// URL. Size and MIME type are checked by the submitting client; the server
// stores what it receives.
func (s *uploadService) UploadImage(ctx context.Context, user *model.User, filename string, body io.Reader, size int64, contentType string) (*UploadResult, error) {
	var result *UploadResult

	pipeline := action.New("upload.image").
		Stage("validate", func(ctx context.Context) error {
			if filename == "" || body == nil {
				return apperrors.ErrFileNotFound
			}
			return nil
		}).
		Stage("authorize", func(ctx context.Context) error {
			if user == nil {
				return apperrors.ErrUnauthorized
			}
			return nil
		}).
		Stage("store", func(ctx context.Context) error {
			name := fmt.Sprintf("%s/%s%s", user.ID, uuid.New(), path.Ext(filename))
			url, err := s.uploader.Upload(ctx, name, body, size, contentType)
			if err != nil {
				return fmt.Errorf("upload image: %w", err)
			}
			result = &UploadResult{URL: url}
			return nil
		})

	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
