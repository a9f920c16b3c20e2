//go:build !integration

package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kopikasir/business/order"
	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	lastInput  order.CreateOrderInput
	created    domain.Order
	createErr  error
	details    []domain.OrderDetail
	detailsErr error
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, input order.CreateOrderInput) (domain.Order, error) {
	f.lastInput = input
	if f.createErr != nil {
		return domain.Order{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeOrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) GetDailyTransactions(ctx context.Context, day time.Time) (domain.DailyTransactions, error) {
	return domain.DailyTransactions{TotalTransactions: 2, TotalAmount: 50000}, nil
}

func (f *fakeOrderService) GetDailyProductSales(ctx context.Context, day time.Time) ([]domain.ProductSales, error) {
	return nil, nil
}

func (f *fakeOrderService) GetDailyShiftSummary(ctx context.Context, day time.Time) ([]domain.ShiftSalesSummary, error) {
	return nil, nil
}

func (f *fakeOrderService) GetDailyOrderDetails(ctx context.Context, day time.Time) ([]domain.OrderDetail, error) {
	return f.details, f.detailsErr
}

func newOrderContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateOrder_MapsRequestToInput(t *testing.T) {
	svc := &fakeOrderService{created: domain.Order{ID: 1, TotalPrice: 50000}}
	handler := NewOrderHandler(svc)

	body := `{"shiftId":7,"cart":[{"productId":1,"quantity":2}],"paymentMethod":"DEBIT","paymentDetails":{"cardNumber":"4111111111111111"}}`
	c, rec := newOrderContext(http.MethodPost, "/api/order", body)

	require.NoError(t, handler.CreateOrder(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, uint(7), svc.lastInput.ShiftID)
	require.Len(t, svc.lastInput.Cart, 1)
	assert.Equal(t, uint(1), svc.lastInput.Cart[0].ProductID)
	assert.Equal(t, 2, svc.lastInput.Cart[0].Quantity)
	assert.Equal(t, "DEBIT", svc.lastInput.PaymentMethod)
	assert.Equal(t, "4111111111111111", svc.lastInput.CardNumber)
}

func TestCreateOrder_EmptyCartIs400(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{})

	body := `{"shiftId":7,"cart":[],"paymentMethod":"CASH"}`
	c, rec := newOrderContext(http.MethodPost, "/api/order", body)

	require.NoError(t, handler.CreateOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_InsufficientStockIs422(t *testing.T) {
	svc := &fakeOrderService{createErr: postgres.ErrInsufficientStock}
	handler := NewOrderHandler(svc)

	body := `{"shiftId":7,"cart":[{"productId":1,"quantity":5}],"paymentMethod":"CASH"}`
	c, rec := newOrderContext(http.MethodPost, "/api/order", body)

	require.NoError(t, handler.CreateOrder(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrder_MissingShiftIs404(t *testing.T) {
	svc := &fakeOrderService{createErr: postgres.ErrShiftNotFound}
	handler := NewOrderHandler(svc)

	body := `{"shiftId":99,"cart":[{"productId":1,"quantity":1}],"paymentMethod":"CASH"}`
	c, rec := newOrderContext(http.MethodPost, "/api/order", body)

	require.NoError(t, handler.CreateOrder(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDailyTransactions_RequiresDate(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{})

	c, rec := newOrderContext(http.MethodGet, "/api/order/daily-transactions", "")
	require.NoError(t, handler.GetDailyTransactions(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newOrderContext(http.MethodGet, "/api/order/daily-transactions?date=31-12-2025", "")
	require.NoError(t, handler.GetDailyTransactions(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newOrderContext(http.MethodGet, "/api/order/daily-transactions?date=2025-12-31", "")
	require.NoError(t, handler.GetDailyTransactions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalTransactions":2`)
}

func TestOrderDetails_EmptyDayIs404(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{})

	c, rec := newOrderContext(http.MethodGet, "/api/order/order-detail?date=2025-12-31", "")
	require.NoError(t, handler.GetDailyOrderDetails(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderDetails_ReturnsOrders(t *testing.T) {
	svc := &fakeOrderService{details: []domain.OrderDetail{
		{ID: 1, Items: []domain.OrderDetailItem{{Name: "Es Kopi Susu", Price: 25000, Quantity: 1}}},
	}}
	handler := NewOrderHandler(svc)

	c, rec := newOrderContext(http.MethodGet, "/api/order/order-detail?date=2025-12-31", "")
	require.NoError(t, handler.GetDailyOrderDetails(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Es Kopi Susu")
}
