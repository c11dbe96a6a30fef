package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewbox/internal/action"
	"reviewbox/internal/service"
)

// UploadHandler handles image uploads to the blob store.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload godoc
// @Summary Upload a product image
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} action.Result
// @Failure 400 {object} action.Result
// @Failure 401 {object} action.Result
// @Router /uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("File not found"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("File not found"))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.uploadService.UploadImage(
		c.Request().Context(),
		CurrentUser(c),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(result))
}
