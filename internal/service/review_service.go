package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewbox/internal/action"
	"reviewbox/internal/cache"
	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
	"reviewbox/internal/repository"
	"reviewbox/internal/validation"
)

// ReviewInput is the combined create/update payload for a review. An absent
// ID creates a new review; a present ID updates the review it names,
// provided the requester's network address matches. Optional fields are
// pointers so an omitted field never clobbers a stored value.
type ReviewInput struct {
	ID         string  `json:"id" validate:"omitempty,uuid"`
	ProductID  string  `json:"productId" validate:"required,uuid"`
	Rating     *int    `json:"rating" validate:"omitempty,min=0,max=5"`
	Text       *string `json:"text"`
	Audio      *string `json:"audio"`
	SocialLink *string `json:"socialLink" validate:"omitempty,url"`
	Name       *string `json:"name"`
}

// ReviewService handles review submission by anonymous visitors.
type ReviewService interface {
	Upsert(ctx context.Context, ip string, input ReviewInput) (*model.Review, error)
	Get(ctx context.Context, id, productID uuid.UUID) (*model.Review, error)
}

type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	cache    *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	cache *cache.Client,
) ReviewService {
	return &reviewService{
		reviews:  reviews,
		products: products,
		cache:    cache,
	}
}

// merge applies the patch onto an existing review. A patch value wins only
// when it was present in the payload.
func merge(existing *model.Review, input ReviewInput) *model.Review {
	if input.Rating != nil {
		existing.Rating = *input.Rating
	}
	if input.Text != nil {
		existing.Text = *input.Text
	}
	if input.Audio != nil {
		existing.Audio = *input.Audio
	}
	if input.SocialLink != nil {
		existing.SocialLink = *input.SocialLink
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}
	return existing
}

// Upsert creates a review for the requester's address, or updates one the
// requester already owns.
func (s *reviewService) Upsert(ctx context.Context, ip string, input ReviewInput) (*model.Review, error) {
	var (
		existing *model.Review
		review   *model.Review
	)

	pipeline := action.New("review.upsert").
		Stage("validate", func(ctx context.Context) error {
			return validation.Check(&input)
		}).
		Stage("authorize", func(ctx context.Context) error {
			if ip == "" {
				return apperrors.ErrUserIPNotFound
			}
			return nil
		}).
		Stage("check-ownership", func(ctx context.Context) error {
			if input.ID == "" {
				return nil
			}
			found, err := s.reviews.FindByRequester(ctx, uuid.MustParse(input.ID), uuid.MustParse(input.ProductID), ip)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					// Missing and foreign reviews are indistinguishable here.
					return apperrors.ErrReviewNotFound
				}
				return fmt.Errorf("find review: %w", err)
			}
			existing = found
			return nil
		}).
		Stage("persist", func(ctx context.Context) error {
			if existing != nil {
				review = merge(existing, input)
				if err := s.reviews.Update(ctx, review); err != nil {
					return fmt.Errorf("update review: %w", err)
				}
				return nil
			}

			review = &model.Review{
				ProductID: uuid.MustParse(input.ProductID),
				IP:        ip,
			}
			review = merge(review, input)
			if err := s.reviews.Create(ctx, review); err != nil {
				return fmt.Errorf("create review: %w", err)
			}
			return nil
		}).
		Stage("invalidate-cache", func(ctx context.Context) error {
			s.invalidatePage(ctx, review.ProductID)
			return nil
		})

	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}
	return review, nil
}

// Get fetches a review within a product.
func (s *reviewService) Get(ctx context.Context, id, productID uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// invalidatePage drops the cached public page for the review's product.
func (s *reviewService) invalidatePage(ctx context.Context, productID uuid.UUID) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return
	}
	_ = s.cache.Delete(ctx, pageCacheKey(product.Slug))
}
