package errors

import (
	"errors"
	"net/http"
)

// ActionError carries a message that is safe to show to the caller. Any
// other error surfaces as a generic internal failure.
type ActionError struct {
	msg string
}

func (e *ActionError) Error() string {
	return e.msg
}

// NewActionError creates an action error with a caller-facing message.
func NewActionError(msg string) *ActionError {
	return &ActionError{msg: msg}
}

var (
	// ErrUnauthorized is returned when no authenticated session exists.
	ErrUnauthorized = NewActionError("Unauthorized")
	// ErrProductNotFound is returned when a product does not exist or is not owned by the caller.
	ErrProductNotFound = NewActionError("Product not found")
	// ErrReviewNotFound is returned when a review does not exist or was created
	// from a different network address. The two cases are deliberately not
	// distinguished so callers cannot probe for existing reviews.
	ErrReviewNotFound = NewActionError("Review not found")
	// ErrSlugExists is returned when another product already uses the slug.
	ErrSlugExists = NewActionError("Slug already exists")
	// ErrPlanLimit is returned when a free-plan user tries to create a second product.
	ErrPlanLimit = NewActionError("You need to upgrade to premium to create more products")
	// ErrReviewHasText is returned when the audio pipeline would overwrite an existing transcript.
	ErrReviewHasText = NewActionError("Review already has text")
	// ErrUserIPNotFound is returned when the requester's network address cannot be resolved.
	ErrUserIPNotFound = NewActionError("User IP not found")
	// ErrTranscriptionEmpty is returned when the transcription service yields no text.
	ErrTranscriptionEmpty = NewActionError("Failed to transcribe audio")
	// ErrFileNotFound is returned when an upload request carries no file part.
	ErrFileNotFound = NewActionError("File not found")
)

// ErrorResponse represents the error side of an action result.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Action errors keep their
// message; anything else is reported as a generic internal failure.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrReviewNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, ErrSlugExists), errors.Is(err, ErrReviewHasText):
		return &HTTPError{StatusCode: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrPlanLimit):
		return &HTTPError{StatusCode: http.StatusForbidden, Message: err.Error()}
	}

	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: actionErr.Error()}
	}
	return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
}
