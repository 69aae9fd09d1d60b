package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/smartpark/smartpark/internal/dto"
	"github.com/smartpark/smartpark/internal/middleware"
	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/service"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateReservation)
	g.GET("", h.ListReservations)
	g.GET("/:id", h.GetReservation)
	g.PUT("/:id", h.UpdateReservation)
	g.DELETE("/:id", h.CancelReservation)
}

// caller returns the authenticated identity placed in context by middleware.Auth.
func caller(c echo.Context) (uint, models.Role) {
	userID, _ := c.Get(middleware.ContextUserID).(uint)
	role, _ := c.Get(middleware.ContextUserRole).(models.Role)
	return userID, role
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, _ := caller(c)

	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.svc.CreateReservation(c.Request().Context(), userID, service.CreateReservationInput{
		SlotID:          req.SlotID,
		ReservationDate: req.ReservationDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		VehicleNumber:   req.VehicleNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrStartInPast),
			errors.Is(err, service.ErrEndBeforeStart):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTimeConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Reservation created successfully",
		"reservation": dto.ToReservationResponse(reservation),
	})
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	userID, role := caller(c)

	var status *models.ReservationStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.ReservationStatus(s)
		status = &rs
	}

	reservations, err := h.svc.ListReservations(c.Request().Context(), userID, role, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": resp})
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	userID, role := caller(c)

	reservation, err := h.svc.GetReservation(c.Request().Context(), uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"reservation": dto.ToReservationResponse(reservation)})
}

func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	userID, role := caller(c)

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.svc.UpdateReservation(c.Request().Context(), uint(id), userID, role, service.UpdateReservationInput{
		SlotID:          req.SlotID,
		ReservationDate: req.ReservationDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		VehicleNumber:   req.VehicleNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrEndBeforeStart):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTimeConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Reservation updated",
		"reservation": dto.ToReservationResponse(reservation),
	})
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	userID, role := caller(c)

	_, err = h.svc.CancelReservation(c.Request().Context(), uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation cancelled"})
}
