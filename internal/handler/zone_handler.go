package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/smartpark/smartpark/internal/dto"
	"github.com/smartpark/smartpark/internal/middleware"
	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/service"
)

type ZoneHandler struct {
	svc service.ZoneService
}

func NewZoneHandler(svc service.ZoneService) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

func (h *ZoneHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListZones)
	g.POST("", h.CreateZone, middleware.RequireRole(models.RoleAdmin))
}

func (h *ZoneHandler) ListZones(c echo.Context) error {
	zones, err := h.svc.ListZones(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"zones": zones})
}

func (h *ZoneHandler) CreateZone(c echo.Context) error {
	var req dto.CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ZoneName == "" || req.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "zoneName and location are required")
	}

	zone := &models.ParkingZone{
		ZoneName:    req.ZoneName,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
	if err := h.svc.CreateZone(c.Request().Context(), zone); err != nil {
		if errors.Is(err, service.ErrDuplicateZone) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Zone created successfully",
		"zone":    zone,
	})
}
