package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
)

// MockUploader is a mock implementation of blob.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, body, size, contentType)
	return args.String(0), args.Error(1)
}

func TestUploadService_UploadImage(t *testing.T) {
	user := &model.User{ID: uuid.New()}

	t.Run("stores under the user's prefix with the original extension", func(t *testing.T) {
		mockUploader := new(MockUploader)
		mockUploader.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, user.ID.String()+"/") && strings.HasSuffix(name, ".png")
		}), mock.Anything, int64(42), "image/png").Return("https://cdn.example.com/logo.png", nil)

		service := NewUploadService(mockUploader)
		result, err := service.UploadImage(context.Background(), user, "logo.png", strings.NewReader("bytes"), 42, "image/png")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/logo.png", result.URL)
		mockUploader.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mockUploader := new(MockUploader)

		service := NewUploadService(mockUploader)
		result, err := service.UploadImage(context.Background(), user, "", nil, 0, "")

		assert.Equal(t, apperrors.ErrFileNotFound, err)
		assert.Nil(t, result)
		mockUploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing session", func(t *testing.T) {
		mockUploader := new(MockUploader)

		service := NewUploadService(mockUploader)
		result, err := service.UploadImage(context.Background(), nil, "logo.png", strings.NewReader("bytes"), 5, "image/png")

		assert.Equal(t, apperrors.ErrUnauthorized, err)
		assert.Nil(t, result)
	})
}

func TestPlanService_GetPlans(t *testing.T) {
	plans := NewPlanService().GetPlans()

	assert.Len(t, plans, 2)
	assert.Equal(t, model.PlanFree, plans[0].Plan)
	assert.True(t, plans[0].Price.IsZero())
	assert.NotNil(t, plans[0].MaxProducts)
	assert.Equal(t, 1, *plans[0].MaxProducts)

	assert.Equal(t, model.PlanPremium, plans[1].Plan)
	assert.Equal(t, "19.9", plans[1].Price.String())
	assert.Nil(t, plans[1].MaxProducts)
}
