package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestMerge_PatchWinsOnlyWhenSet(t *testing.T) {
	existing := &model.Review{
		Rating:     3,
		Text:       "old text",
		Audio:      "old.webm",
		SocialLink: "https://old.example.com",
		Name:       "Old Name",
	}

	merged := merge(existing, ReviewInput{
		Rating: intPtr(5),
		Name:   strPtr("New Name"),
	})

	assert.Equal(t, 5, merged.Rating)
	assert.Equal(t, "New Name", merged.Name)
	// Fields absent from the payload keep their stored values.
	assert.Equal(t, "old text", merged.Text)
	assert.Equal(t, "old.webm", merged.Audio)
	assert.Equal(t, "https://old.example.com", merged.SocialLink)
}

func TestMerge_Idempotent(t *testing.T) {
	input := ReviewInput{
		Rating: intPtr(4),
		Text:   strPtr("solid"),
	}

	review := &model.Review{Rating: 1, Text: "draft", Name: "Bob"}
	once := *merge(review, input)
	twice := *merge(review, input)

	assert.Equal(t, once, twice)
}

func TestReviewService_Upsert_Create(t *testing.T) {
	productID := uuid.New()
	product := &model.Product{ID: productID, Slug: "phone"}

	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)

	mockReviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
	mockProducts.On("FindByID", mock.Anything, productID).Return(product, nil)

	service := NewReviewService(mockReviews, mockProducts, nil)
	review, err := service.Upsert(context.Background(), "203.0.113.7", ReviewInput{
		ProductID: productID.String(),
		Rating:    intPtr(5),
		Text:      strPtr("Fantastic"),
		Name:      strPtr("Alice"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, productID, review.ProductID)
	assert.Equal(t, "203.0.113.7", review.IP)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Fantastic", review.Text)
	assert.Equal(t, "Alice", review.Name)

	mockReviews.AssertExpectations(t)
	mockReviews.AssertNotCalled(t, "FindByRequester", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Upsert_Update(t *testing.T) {
	productID := uuid.New()
	reviewID := uuid.New()
	ip := "203.0.113.7"

	tests := []struct {
		name          string
		input         ReviewInput
		setupMock     func(*MockReviewRepository, *MockProductRepository)
		expectedError error
		check         func(*testing.T, *model.Review)
	}{
		{
			name: "requester updates their review",
			input: ReviewInput{
				ID:        reviewID.String(),
				ProductID: productID.String(),
				Rating:    intPtr(4),
			},
			setupMock: func(mr *MockReviewRepository, mp *MockProductRepository) {
				mr.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(&model.Review{
					ID:        reviewID,
					ProductID: productID,
					IP:        ip,
					Rating:    2,
					Text:      "kept",
				}, nil)
				mr.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				mp.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID, Slug: "phone"}, nil)
			},
			check: func(t *testing.T, review *model.Review) {
				assert.Equal(t, 4, review.Rating)
				assert.Equal(t, "kept", review.Text)
			},
		},
		{
			name: "review created from a different address",
			input: ReviewInput{
				ID:        reviewID.String(),
				ProductID: productID.String(),
				Rating:    intPtr(1),
			},
			setupMock: func(mr *MockReviewRepository, mp *MockProductRepository) {
				mr.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReviewNotFound,
		},
		{
			name: "review does not exist",
			input: ReviewInput{
				ID:        reviewID.String(),
				ProductID: productID.String(),
				Text:      strPtr("hello"),
			},
			setupMock: func(mr *MockReviewRepository, mp *MockProductRepository) {
				mr.On("FindByRequester", mock.Anything, reviewID, productID, ip).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockReviews, mockProducts)

			service := NewReviewService(mockReviews, mockProducts, nil)
			review, err := service.Upsert(context.Background(), ip, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				if tt.check != nil {
					tt.check(t, review)
				}
			}

			mockReviews.AssertExpectations(t)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestReviewService_Upsert_MissingIP(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)

	service := NewReviewService(mockReviews, mockProducts, nil)
	review, err := service.Upsert(context.Background(), "", ReviewInput{
		ProductID: uuid.New().String(),
		Rating:    intPtr(5),
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrUserIPNotFound, err)
	assert.Nil(t, review)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Upsert_RatingOutOfRange(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockProducts := new(MockProductRepository)

	service := NewReviewService(mockReviews, mockProducts, nil)
	review, err := service.Upsert(context.Background(), "203.0.113.7", ReviewInput{
		ProductID: uuid.New().String(),
		Rating:    intPtr(6),
	})

	assert.Error(t, err)
	assert.Nil(t, review)
	assert.Contains(t, err.Error(), "Invalid input")
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Get(t *testing.T) {
	reviewID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockReviewRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockReviewRepository) {
				m.On("FindByID", mock.Anything, reviewID, productID).Return(&model.Review{
					ID:        reviewID,
					ProductID: productID,
					Rating:    5,
				}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(m *MockReviewRepository) {
				m.On("FindByID", mock.Anything, reviewID, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockReviews)

			service := NewReviewService(mockReviews, mockProducts, nil)
			review, err := service.Get(context.Background(), reviewID, productID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, reviewID, review.ID)
			}

			mockReviews.AssertExpectations(t)
		})
	}
}
