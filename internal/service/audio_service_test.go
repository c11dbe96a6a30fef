package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
)

func TestAudioService_Process(t *testing.T) {
	reviewID := uuid.New()
	productID := uuid.New()
	ip := "203.0.113.7"
	input := ProcessAudioInput{ReviewID: reviewID.String(), ProductID: productID.String()}

	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)
	mockTranscriber := new(MockTranscriber)
	mockCompleter := new(MockCompleter)

	mockReviews.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(&model.Review{
		ID:        reviewID,
		ProductID: productID,
		IP:        ip,
		Audio:     "rec.webm",
	}, nil)
	mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{
		ID:   productID,
		Name: "Phone",
		Slug: "phone",
	}, nil)
	mockTranscriber.On("Transcribe", mock.Anything, "rec.webm", mock.Anything).
		Return("so yeah the phone is uh really nice honestly", nil)
	// The reformat prompt carries the product name and target language.
	mockCompleter.On("Complete", mock.Anything, mock.MatchedBy(func(system string) bool {
		return strings.Contains(system, `"Phone"`) && strings.Contains(system, "French")
	}), "so yeah the phone is uh really nice honestly").
		Return("Le téléphone est vraiment agréable.", nil)
	mockReviews.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

	service := NewAudioService(mockReviews, mockProducts, nil, mockTranscriber, mockCompleter, "French")
	review, err := service.Process(context.Background(), ip, input, "rec.webm", strings.NewReader("audio-bytes"))

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, "Le téléphone est vraiment agréable.", review.Text)

	mockReviews.AssertExpectations(t)
	mockTranscriber.AssertExpectations(t)
	mockCompleter.AssertExpectations(t)
}

func TestAudioService_Process_ReviewAlreadyHasText(t *testing.T) {
	reviewID := uuid.New()
	productID := uuid.New()
	ip := "203.0.113.7"

	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)
	mockTranscriber := new(MockTranscriber)
	mockCompleter := new(MockCompleter)

	mockReviews.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(&model.Review{
		ID:        reviewID,
		ProductID: productID,
		IP:        ip,
		Text:      "already transcribed",
	}, nil)
	mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{
		ID:   productID,
		Name: "Phone",
	}, nil)

	service := NewAudioService(mockReviews, mockProducts, nil, mockTranscriber, mockCompleter, "French")
	review, err := service.Process(context.Background(), ip, ProcessAudioInput{
		ReviewID:  reviewID.String(),
		ProductID: productID.String(),
	}, "rec.webm", strings.NewReader("audio-bytes"))

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrReviewHasText, err)
	assert.Nil(t, review)

	// Rejection happens before anything leaves the process.
	mockTranscriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
	mockCompleter.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	mockReviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAudioService_Process_EmptyTranscript(t *testing.T) {
	reviewID := uuid.New()
	productID := uuid.New()
	ip := "203.0.113.7"

	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)
	mockTranscriber := new(MockTranscriber)
	mockCompleter := new(MockCompleter)

	mockReviews.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(&model.Review{
		ID:        reviewID,
		ProductID: productID,
		IP:        ip,
	}, nil)
	mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{
		ID:   productID,
		Name: "Phone",
	}, nil)
	mockTranscriber.On("Transcribe", mock.Anything, "rec.webm", mock.Anything).Return("", nil)

	service := NewAudioService(mockReviews, mockProducts, nil, mockTranscriber, mockCompleter, "French")
	review, err := service.Process(context.Background(), ip, ProcessAudioInput{
		ReviewID:  reviewID.String(),
		ProductID: productID.String(),
	}, "rec.webm", strings.NewReader("audio-bytes"))

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrTranscriptionEmpty, err)
	assert.Nil(t, review)

	mockCompleter.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	mockReviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAudioService_Process_ReviewNotOwnedByRequester(t *testing.T) {
	reviewID := uuid.New()
	productID := uuid.New()

	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)
	mockTranscriber := new(MockTranscriber)
	mockCompleter := new(MockCompleter)

	mockReviews.On("FindByRequester", mock.Anything, reviewID, productID, "198.51.100.9").
		Return(nil, gorm.ErrRecordNotFound)

	service := NewAudioService(mockReviews, mockProducts, nil, mockTranscriber, mockCompleter, "French")
	review, err := service.Process(context.Background(), "198.51.100.9", ProcessAudioInput{
		ReviewID:  reviewID.String(),
		ProductID: productID.String(),
	}, "rec.webm", strings.NewReader("audio-bytes"))

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrReviewNotFound, err)
	assert.Nil(t, review)
	mockTranscriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestAudioService_Process_MissingFile(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)
	mockTranscriber := new(MockTranscriber)
	mockCompleter := new(MockCompleter)

	service := NewAudioService(mockReviews, mockProducts, nil, mockTranscriber, mockCompleter, "French")
	review, err := service.Process(context.Background(), "203.0.113.7", ProcessAudioInput{
		ReviewID:  uuid.New().String(),
		ProductID: uuid.New().String(),
	}, "", nil)

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrFileNotFound, err)
	assert.Nil(t, review)
	mockReviews.AssertNotCalled(t, "FindByRequester", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
