package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"kopikasir/business/order"
	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OrderService interface {
	CreateOrder(ctx context.Context, input order.CreateOrderInput) (domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetDailyTransactions(ctx context.Context, day time.Time) (domain.DailyTransactions, error)
	GetDailyProductSales(ctx context.Context, day time.Time) ([]domain.ProductSales, error)
	GetDailyShiftSummary(ctx context.Context, day time.Time) ([]domain.ShiftSalesSummary, error)
	GetDailyOrderDetails(ctx context.Context, day time.Time) ([]domain.OrderDetail, error)
}

type OrderHandler struct {
	orderService OrderService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type PaymentDetailsRequest struct {
	CardNumber string `json:"cardNumber"`
}

type CreateOrderRequest struct {
	ShiftID        uint                  `json:"shiftId" validate:"required"`
	Cart           []CartItemRequest     `json:"cart" validate:"required,min=1,dive"`
	PaymentMethod  string                `json:"paymentMethod" validate:"required"`
	PaymentDetails PaymentDetailsRequest `json:"paymentDetails"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cart := make([]order.CartItem, len(req.Cart))
	for i, item := range req.Cart {
		cart[i] = order.CartItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newOrder, err := h.orderService.CreateOrder(ctx, order.CreateOrderInput{
		ShiftID:       req.ShiftID,
		Cart:          cart,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.PaymentDetails.CardNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrShiftNotFound), errors.Is(err, order.ErrShiftNotActive):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "No active shift found"})
		case errors.Is(err, postgres.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, postgres.ErrInsufficientStock):
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		case errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInvalidPaymentMethod),
			errors.Is(err, order.ErrCardNumberRequired):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create order", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to create order."})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newOrder))
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to fetch orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to fetch orders."})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

// parseDateParam reads the mandatory ?date=YYYY-MM-DD query parameter
// shared by the reporting endpoints.
func parseDateParam(c echo.Context) (time.Time, error) {
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return time.Time{}, errors.New("date parameter is required")
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errors.New("date must be formatted as YYYY-MM-DD")
	}

	return day, nil
}

func (h *OrderHandler) GetDailyTransactions(c echo.Context) error {
	day, err := parseDateParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	transactions, err := h.orderService.GetDailyTransactions(ctx, day)
	if err != nil {
		logger.Error("Failed to fetch daily transactions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, transactions)
}

func (h *OrderHandler) GetDailyProductSales(c echo.Context) error {
	day, err := parseDateParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sales, err := h.orderService.GetDailyProductSales(ctx, day)
	if err != nil {
		logger.Error("Failed to fetch daily product sales", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, sales)
}

func (h *OrderHandler) GetDailyShiftSummary(c echo.Context) error {
	day, err := parseDateParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.orderService.GetDailyShiftSummary(ctx, day)
	if err != nil {
		logger.Error("Failed to fetch daily shift summary", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *OrderHandler) GetDailyOrderDetails(c echo.Context) error {
	day, err := parseDateParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	details, err := h.orderService.GetDailyOrderDetails(ctx, day)
	if err != nil {
		logger.Error("Failed to fetch daily order details", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Internal server error"})
	}

	if len(details) == 0 {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "No orders found for this date"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": details,
	})
}
