package handler

import (
	"net/http"

	"novasalud/internal/delivery/http/response"
	"novasalud/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
}

// DashboardHandler serves the dashboard figures
type DashboardHandler struct {
	dashboardUC usecase.DashboardUsecase
}

// NewDashboardHandler is the constructor for DashboardHandler
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{dashboardUC: params.DashboardUC}
}

// GetMetrics handles computing the dashboard metrics
func (h *DashboardHandler) GetMetrics(c echo.Context) error {
	metrics, err := h.dashboardUC.GetMetrics(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, metrics, "Dashboard metrics retrieved successfully")
}
