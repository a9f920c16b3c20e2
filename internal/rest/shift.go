package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"kopikasir/business/shift"
	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ShiftService interface {
	StartShift(ctx context.Context, userID uint, startCash float64, shiftType string) (domain.Shift, error)
	EndShift(ctx context.Context, shiftID uint, endCash *float64) (domain.Shift, error)
	GetActiveShift(ctx context.Context, userID uint) (domain.Shift, error)
	GetTransactionSummary(ctx context.Context, userID uint) (domain.ShiftTransactionSummary, error)
}

type ShiftHandler struct {
	shiftService ShiftService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewShiftHandler(shiftService ShiftService) *ShiftHandler {
	return &ShiftHandler{
		shiftService: shiftService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type StartShiftRequest struct {
	UserID    uint     `json:"userId" validate:"required"`
	StartCash *float64 `json:"startCash" validate:"required,gte=0"`
	ShiftType string   `json:"shiftType" validate:"required"`
}

type EndShiftRequest struct {
	EndCash *float64 `json:"endCash" validate:"omitempty,gte=0"`
}

func (h *ShiftHandler) StartShift(c echo.Context) error {
	var req StartShiftRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind start shift request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "User ID, start cash, and shift type are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newShift, err := h.shiftService.StartShift(ctx, req.UserID, *req.StartCash, req.ShiftType)
	if err != nil {
		switch {
		case errors.Is(err, shift.ErrInvalidShiftType):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid shift type. Must be OPENING or CLOSING"})
		case errors.Is(err, shift.ErrShiftAlreadyActive):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to start shift", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newShift))
}

func (h *ShiftHandler) EndShift(c echo.Context) error {
	shiftID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Shift ID is required"})
	}

	var req EndShiftRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind end shift request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	endedShift, err := h.shiftService.EndShift(ctx, uint(shiftID), req.EndCash)
	if err != nil {
		if errors.Is(err, postgres.ErrShiftNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "No active shift found"})
		}
		logger.Error("Failed to end shift", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(endedShift))
}

func (h *ShiftHandler) GetActiveShift(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "User ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	activeShift, err := h.shiftService.GetActiveShift(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, postgres.ErrShiftNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "No active shift found"})
		}
		logger.Error("Failed to fetch active shift", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"shift": activeShift,
	})
}

// GetTransactionSummary returns the cash/debit split for the user's
// active shift, zeros when no shift is open.
func (h *ShiftHandler) GetTransactionSummary(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "User ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.shiftService.GetTransactionSummary(ctx, uint(userID))
	if err != nil {
		logger.Error("Failed to fetch transaction summary", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, summary)
}
