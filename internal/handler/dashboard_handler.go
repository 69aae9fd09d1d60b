package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/smartpark/smartpark/internal/middleware"
	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/service"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetDashboard, middleware.RequireRole(models.RoleAdmin))
}

func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	report, err := h.svc.GetReport(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
