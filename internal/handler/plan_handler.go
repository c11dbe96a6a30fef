package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewbox/internal/action"
	"reviewbox/internal/service"
)

// PlanHandler serves the subscription plan catalog.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// List godoc
// @Summary List subscription plans
// @Tags plans
// @Produce json
// @Success 200 {object} action.Result
// @Router /plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, action.OK(h.planService.GetPlans()))
}
