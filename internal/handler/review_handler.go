package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reviewbox/internal/action"
	"reviewbox/internal/service"
)

// ReviewHandler handles review endpoints reachable by anonymous visitors.
type ReviewHandler struct {
	reviewService service.ReviewService
	audioService  service.AudioService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService, audioService service.AudioService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		audioService:  audioService,
	}
}

// Upsert godoc
// @Summary Create or update a review
// @Description Without an id a new review is created for the requester's
// @Description address. With an id, the review is updated only when the
// @Description requester's address matches the one that created it.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body service.ReviewInput true "Review data"
// @Success 200 {object} action.Result
// @Failure 400 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /reviews [post]
func (h *ReviewHandler) Upsert(c echo.Context) error {
	var input service.ReviewInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid request body"))
	}

	review, err := h.reviewService.Upsert(c.Request().Context(), c.RealIP(), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(review))
}

// Get godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Param productId query string true "Product ID"
// @Success 200 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid review id"))
	}
	productID, err := uuid.Parse(c.QueryParam("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid product id"))
	}

	review, err := h.reviewService.Get(c.Request().Context(), id, productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(review))
}

// ProcessAudio godoc
// @Summary Transcribe and attach an audio review
// @Tags reviews
// @Accept mpfd
// @Produce json
// @Param id path string true "Review ID"
// @Param productId formData string true "Product ID"
// @Param audio formData file true "Audio recording"
// @Success 200 {object} action.Result
// @Failure 400 {object} action.Result
// @Failure 404 {object} action.Result
// @Failure 409 {object} action.Result
// @Router /reviews/{id}/audio [post]
func (h *ReviewHandler) ProcessAudio(c echo.Context) error {
	input := service.ProcessAudioInput{
		ReviewID:  c.Param("id"),
		ProductID: c.FormValue("productId"),
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("File not found"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("File not found"))
	}
	defer file.Close()

	review, err := h.audioService.Process(c.Request().Context(), c.RealIP(), input, fileHeader.Filename, file)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(review))
}
