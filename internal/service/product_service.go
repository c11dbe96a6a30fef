package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewbox/internal/action"
	"reviewbox/internal/cache"
	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/mail"
	"reviewbox/internal/model"
	"reviewbox/internal/repository"
	"reviewbox/internal/validation"
)

const productPageCacheTTL = 5 * time.Minute

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name            string `json:"name" validate:"required"`
	Slug            string `json:"slug" validate:"required,min=2"`
	Image           string `json:"image" validate:"omitempty,url"`
	BackgroundColor string `json:"backgroundColor" validate:"required,oneof=gradient-1 gradient-2 gradient-3 gradient-4 gradient-5 gradient-6"`
}

// ProductPage is the public payload for a product's review page.
type ProductPage struct {
	Product *model.Product          `json:"product"`
	Reviews []model.Review          `json:"reviews"`
	Stats   *repository.ReviewStats `json:"stats"`
}

// ProductService handles product lifecycle operations.
type ProductService interface {
	Create(ctx context.Context, user *model.User, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, input ProductInput) (*model.Product, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
	Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, user *model.User) ([]model.Product, error)
	GetPage(ctx context.Context, slug string) (*ProductPage, error)
}

type productService struct {
	products   repository.ProductRepository
	reviews    repository.ReviewRepository
	cache      *cache.Client
	mailer     mail.Mailer
	emailFrom  string
	appBaseURL string
}

// NewProductService creates a new product service.
func NewProductService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	cache *cache.Client,
	mailer mail.Mailer,
	emailFrom string,
	appBaseURL string,
) ProductService {
	return &productService{
		products:   products,
		reviews:    reviews,
		cache:      cache,
		mailer:     mailer,
		emailFrom:  emailFrom,
		appBaseURL: appBaseURL,
	}
}

// NormalizeSlug lowercases a slug and replaces spaces with hyphens.
func NormalizeSlug(slug string) string {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	return strings.Join(strings.Fields(normalized), "-")
}

func pageCacheKey(slug string) string {
	return fmt.Sprintf("product_page:%s", slug)
}

// Create runs the product creation pipeline: validate, authorize, slug
// uniqueness, plan limit, persist, then the first-product email.
func (s *productService) Create(ctx context.Context, user *model.User, input ProductInput) (*model.Product, error) {
	var product *model.Product

	pipeline := action.New("product.create").
		Stage("validate", func(ctx context.Context) error {
			if err := validation.Check(&input); err != nil {
				return err
			}
			input.Slug = NormalizeSlug(input.Slug)
			return nil
		}).
		Stage("authorize", func(ctx context.Context) error {
			if user == nil {
				return apperrors.ErrUnauthorized
			}
			return nil
		}).
		Stage("check-slug", func(ctx context.Context) error {
			return s.verifySlugUniqueness(ctx, input.Slug, uuid.Nil)
		}).
		Stage("check-plan", func(ctx context.Context) error {
			return s.verifyUserPlan(ctx, user)
		}).
		Stage("persist", func(ctx context.Context) error {
			product = &model.Product{
				Name:            input.Name,
				Slug:            input.Slug,
				Image:           input.Image,
				BackgroundColor: input.BackgroundColor,
				UserID:          user.ID,
			}
			if err := s.products.Create(ctx, product); err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			return nil
		}).
		Stage("notify", func(ctx context.Context) error {
			// Best effort: a failed email never fails the creation.
			s.sendFirstProductEmail(ctx, user)
			return nil
		})

	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}
	return product, nil
}

// Update runs the product update pipeline, scoped to the owning user.
func (s *productService) Update(ctx context.Context, user *model.User, id uuid.UUID, input ProductInput) (*model.Product, error) {
	var product *model.Product

	pipeline := action.New("product.update").
		Stage("validate", func(ctx context.Context) error {
			if err := validation.Check(&input); err != nil {
				return err
			}
			input.Slug = NormalizeSlug(input.Slug)
			return nil
		}).
		Stage("authorize", func(ctx context.Context) error {
			if user == nil {
				return apperrors.ErrUnauthorized
			}
			return nil
		}).
		Stage("load", func(ctx context.Context) error {
			existing, err := s.products.FindByIDForUser(ctx, id, user.ID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrProductNotFound
				}
				return fmt.Errorf("find product: %w", err)
			}
			product = existing
			return nil
		}).
		Stage("check-slug", func(ctx context.Context) error {
			return s.verifySlugUniqueness(ctx, input.Slug, id)
		}).
		Stage("persist", func(ctx context.Context) error {
			oldSlug := product.Slug
			product.Name = input.Name
			product.Slug = input.Slug
			product.Image = input.Image
			product.BackgroundColor = input.BackgroundColor
			if err := s.products.Update(ctx, product); err != nil {
				return fmt.Errorf("update product: %w", err)
			}
			_ = s.cache.Delete(ctx, pageCacheKey(oldSlug))
			_ = s.cache.Delete(ctx, pageCacheKey(product.Slug))
			return nil
		})

	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product owned by the user.
func (s *productService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	pipeline := action.New("product.delete").
		Stage("authorize", func(ctx context.Context) error {
			if user == nil {
				return apperrors.ErrUnauthorized
			}
			return nil
		}).
		Stage("persist", func(ctx context.Context) error {
			existing, err := s.products.FindByIDForUser(ctx, id, user.ID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrProductNotFound
				}
				return fmt.Errorf("find product: %w", err)
			}
			if err := s.products.Delete(ctx, id, user.ID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrProductNotFound
				}
				return fmt.Errorf("delete product: %w", err)
			}
			_ = s.cache.Delete(ctx, pageCacheKey(existing.Slug))
			return nil
		})

	return pipeline.Run(ctx)
}

// Get fetches a product owned by the user.
func (s *productService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Product, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	product, err := s.products.FindByIDForUser(ctx, id, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns the products owned by the user.
func (s *productService) List(ctx context.Context, user *model.User) ([]model.Product, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.products.ListByUser(ctx, user.ID)
}

// GetPage fetches the public review page payload for a slug, with caching.
func (s *productService) GetPage(ctx context.Context, slug string) (*ProductPage, error) {
	var cached ProductPage
	if s.cache.GetJSON(ctx, pageCacheKey(slug), &cached) {
		return &cached, nil
	}

	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	stats, err := s.reviews.Stats(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	page := &ProductPage{Product: product, Reviews: reviews, Stats: stats}
	s.cache.SetJSON(ctx, pageCacheKey(slug), page, productPageCacheTTL)
	return page, nil
}

// verifySlugUniqueness fails when another product already uses the slug.
// A unique index on the column backs this check under concurrent creates.
func (s *productService) verifySlugUniqueness(ctx context.Context, slug string, excludeID uuid.UUID) error {
	count, err := s.products.CountBySlug(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("count slug: %w", err)
	}
	if count > 0 {
		return apperrors.ErrSlugExists
	}
	return nil
}

// verifyUserPlan enforces the one-product limit for non-premium users.
func (s *productService) verifyUserPlan(ctx context.Context, user *model.User) error {
	if user.IsPremium() {
		return nil
	}
	count, err := s.products.CountByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return apperrors.ErrPlanLimit
	}
	return nil
}

// sendFirstProductEmail notifies a free-plan user after their first product.
func (s *productService) sendFirstProductEmail(ctx context.Context, user *model.User) {
	if s.mailer == nil || user.IsPremium() {
		return
	}

	count, err := s.products.CountByUser(ctx, user.ID)
	if err != nil || count != 1 {
		return
	}

	product, err := s.products.FindFirstByUser(ctx, user.ID)
	if err != nil {
		return
	}

	msg := mail.Message{
		To:      user.Email,
		From:    s.emailFrom,
		Subject: "You created your first product",
		HTML: fmt.Sprintf(
			`<p>Congratulations, your product <strong>%s</strong> is live.</p><p>Share it with your customers: <a href="%s/r/%s">%s/r/%s</a></p>`,
			product.Name, s.appBaseURL, product.Slug, s.appBaseURL, product.Slug,
		),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("send first product email to %s: %v", user.Email, err)
	}
}
