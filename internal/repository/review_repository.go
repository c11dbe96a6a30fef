package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewbox/internal/model"
)

// ReviewStats aggregates ratings for a product page.
type ReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int64   `json:"total_count"`
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id, productID uuid.UUID) (*model.Review, error)
	// FindByRequester scopes the lookup to the network address that created
	// the review, so a miss and a forbidden access look identical.
	FindByRequester(ctx context.Context, id, productID uuid.UUID, ip string) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	Stats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Update updates an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// FindByID finds a review by ID within a product.
func (r *reviewRepository) FindByID(ctx context.Context, id, productID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", id, productID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByRequester finds a review by ID, product, and submitter address.
func (r *reviewRepository) FindByRequester(ctx context.Context, id, productID uuid.UUID, ip string) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ? AND ip = ?", id, productID, ip).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProduct lists reviews for a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Stats computes the average rating and review count for a product.
func (r *reviewRepository) Stats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error) {
	var stats ReviewStats
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_count").
		Where("product_id = ?", productID).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
