package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewbox/internal/action"
	"reviewbox/internal/ai"
	"reviewbox/internal/cache"
	apperrors "reviewbox/internal/errors"
	"reviewbox/internal/model"
	"reviewbox/internal/repository"
	"reviewbox/internal/validation"
)

// The reformatting instruction given to the completion model. It must not
// change the meaning of the transcript, only its structure, and the final
// text targets the configured output language.
const reformatPromptTemplate = `Context:
You are a transcriptionist and you are transcribing an audio review for a product. The audio review is about the product %q.

Goal:
You need to return the transcript of the audio review.

Criteria:
- You CAN'T add, edit, or remove any information from the audio review.
- You ONLY reformat and regroup the information from the audio review.
- You USE THE SAME language and tone as the customer used in the audio review.

Response format:
- Return the plain text content of the review, without a title or any other information.
- Write the review in %s.`

// ProcessAudioInput identifies the review an audio payload belongs to.
type ProcessAudioInput struct {
	ReviewID  string `json:"reviewId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
}

// AudioService runs the two-step audio review pipeline: speech-to-text,
// then a reformatting completion, persisted into the review's text.
type AudioService interface {
	Process(ctx context.Context, ip string, input ProcessAudioInput, filename string, audio io.Reader) (*model.Review, error)
}

type audioService struct {
	reviews     repository.ReviewRepository
	products    repository.ProductRepository
	cache       *cache.Client
	transcriber ai.Transcriber
	completer   ai.Completer
	language    string
}

// NewAudioService creates a new audio processing service.
func NewAudioService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	cache *cache.Client,
	transcriber ai.Transcriber,
	completer ai.Completer,
	language string,
) AudioService {
	return &audioService{
		reviews:     reviews,
		products:    products,
		cache:       cache,
		transcriber: transcriber,
		completer:   completer,
		language:    language,
	}
}

// Process transcribes and reformats an audio review, then persists the text.
// A review that already has text is rejected before any external call is
// made; this is the pipeline's only duplicate-processing guard.
func (s *audioService) Process(ctx context.Context, ip string, input ProcessAudioInput, filename string, audio io.Reader) (*model.Review, error) {
	var (
		review     *model.Review
		product    *model.Product
		transcript string
	)

	pipeline := action.New("review.process-audio").
		Stage("validate", func(ctx context.Context) error {
			if err := validation.Check(&input); err != nil {
				return err
			}
			if audio == nil {
				return apperrors.ErrFileNotFound
			}
			return nil
		}).
		Stage("authorize", func(ctx context.Context) error {
			if ip == "" {
				return apperrors.ErrUserIPNotFound
			}
			return nil
		}).
		Stage("load", func(ctx context.Context) error {
			found, err := s.reviews.FindByRequester(ctx, uuid.MustParse(input.ReviewID), uuid.MustParse(input.ProductID), ip)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrReviewNotFound
				}
				return fmt.Errorf("find review: %w", err)
			}
			review = found

			product, err = s.products.FindByID(ctx, review.ProductID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrReviewNotFound
				}
				return fmt.Errorf("find product: %w", err)
			}
			return nil
		}).
		Stage("check-text", func(ctx context.Context) error {
			if review.Text != "" {
				return apperrors.ErrReviewHasText
			}
			return nil
		}).
		Stage("transcribe", func(ctx context.Context) error {
			text, err := s.transcriber.Transcribe(ctx, filename, audio)
			if err != nil {
				return fmt.Errorf("transcribe audio: %w", err)
			}
			if text == "" {
				return apperrors.ErrTranscriptionEmpty
			}
			transcript = text
			return nil
		}).
		Stage("reformat", func(ctx context.Context) error {
			system := fmt.Sprintf(reformatPromptTemplate, product.Name, s.language)
			text, err := s.completer.Complete(ctx, system, transcript)
			if err != nil {
				return fmt.Errorf("reformat transcript: %w", err)
			}
			review.Text = text
			return nil
		}).
		Stage("persist", func(ctx context.Context) error {
			if err := s.reviews.Update(ctx, review); err != nil {
				return fmt.Errorf("update review: %w", err)
			}
			_ = s.cache.Delete(ctx, pageCacheKey(product.Slug))
			return nil
		})

	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}
	return review, nil
}
