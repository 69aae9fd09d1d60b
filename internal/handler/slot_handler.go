package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/smartpark/smartpark/internal/dto"
	"github.com/smartpark/smartpark/internal/middleware"
	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
	"github.com/smartpark/smartpark/internal/service"
)

type SlotHandler struct {
	svc service.SlotService
}

func NewSlotHandler(svc service.SlotService) *SlotHandler {
	return &SlotHandler{svc: svc}
}

func (h *SlotHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListSlots)
	g.POST("", h.CreateSlot, middleware.RequireRole(models.RoleAdmin, models.RoleStaff))
}

func (h *SlotHandler) ListSlots(c echo.Context) error {
	var filter repository.SlotFilter
	if z := c.QueryParam("zoneId"); z != "" {
		zoneID, err := strconv.ParseUint(z, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid zoneId")
		}
		id := uint(zoneID)
		filter.ZoneID = &id
	}
	if s := c.QueryParam("status"); s != "" {
		status := models.SlotStatus(s)
		filter.Status = &status
	}

	slots, err := h.svc.ListSlots(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

func (h *SlotHandler) CreateSlot(c echo.Context) error {
	var req dto.CreateSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SlotNumber == "" || req.ZoneID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "slotNumber and zoneId are required")
	}

	slot := &models.ParkingSlot{
		SlotNumber: req.SlotNumber,
		ZoneID:     req.ZoneID,
		Status:     req.Status,
		SlotType:   req.SlotType,
	}
	if err := h.svc.CreateSlot(c.Request().Context(), slot); err != nil {
		switch {
		case errors.Is(err, service.ErrZoneNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrZoneFull):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateSlot):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Slot created successfully",
		"slot":    slot,
	})
}
