package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reviewbox/internal/action"
	"reviewbox/internal/errors"
	"reviewbox/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, action.Fail(httpErr.Message))
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProductInput true "Product data"
// @Success 201 {object} action.Result
// @Failure 400 {object} action.Result
// @Failure 401 {object} action.Result
// @Failure 403 {object} action.Result
// @Failure 409 {object} action.Result
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var input service.ProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid request body"))
	}

	product, err := h.productService.Create(c.Request().Context(), CurrentUser(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, action.OK(product))
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body service.ProductInput true "Product data"
// @Success 200 {object} action.Result
// @Failure 400 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid product id"))
	}

	var input service.ProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid request body"))
	}

	product, err := h.productService.Update(c.Request().Context(), CurrentUser(c), id, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(product))
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid product id"))
	}

	if err := h.productService.Delete(c.Request().Context(), CurrentUser(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(map[string]string{"message": "product deleted"}))
}

// Get godoc
// @Summary Get an owned product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, action.Fail("invalid product id"))
	}

	product, err := h.productService.Get(c.Request().Context(), CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(product))
}

// List godoc
// @Summary List owned products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} action.Result
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context(), CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(products))
}

// GetPage godoc
// @Summary Get a public review page by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} action.Result
// @Failure 404 {object} action.Result
// @Router /r/{slug} [get]
func (h *ProductHandler) GetPage(c echo.Context) error {
	page, err := h.productService.GetPage(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, action.OK(page))
}
