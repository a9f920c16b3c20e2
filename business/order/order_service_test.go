//go:build !integration

package order

import (
	"context"
	"testing"
	"time"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCardKey = "0123456789abcdef"

type fakeOrderRepo struct {
	created    *domain.Order
	createErr  error
	prices     map[uint]float64
	daily      domain.DailyTransactions
	dayOrders  []domain.Order
	productRow []domain.ProductSales
}

func (f *fakeOrderRepo) CreateWithStockDecrement(ctx context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}

	// mimic the repository: fill price snapshots and the total from
	// the product table
	var total float64
	for i := range order.OrderItems {
		price := f.prices[order.OrderItems[i].ProductID]
		order.OrderItems[i].Price = price
		total += price * float64(order.OrderItems[i].Quantity)
	}
	order.TotalPrice = total
	order.ID = 1

	f.created = order
	return nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return f.dayOrders, nil
}

func (f *fakeOrderRepo) DailyTransactions(ctx context.Context, from, to time.Time) (domain.DailyTransactions, error) {
	return f.daily, nil
}

func (f *fakeOrderRepo) DailyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSales, error) {
	return f.productRow, nil
}

func (f *fakeOrderRepo) FindByDateWithItems(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return f.dayOrders, nil
}

type fakeShiftRepo struct {
	shifts map[uint]domain.Shift
	byDay  []domain.Shift
}

func (f *fakeShiftRepo) FindByID(ctx context.Context, id uint) (domain.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok {
		return domain.Shift{}, postgres.ErrShiftNotFound
	}
	return shift, nil
}

func (f *fakeShiftRepo) FindByDateWithOrders(ctx context.Context, from, to time.Time) ([]domain.Shift, error) {
	return f.byDay, nil
}

func activeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[uint]domain.Shift{
		7: {ID: 7, UserID: 1, IsActive: true, StartCash: 100000},
	}}
}

func TestCreateOrder_TotalFromUnitPrices(t *testing.T) {
	orderRepo := &fakeOrderRepo{prices: map[uint]float64{1: 25000, 2: 15000}}
	svc := NewOrderService(orderRepo, activeShiftRepo(), testCardKey)

	created, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID: 7,
		Cart: []CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 65000.0, created.TotalPrice)
	assert.Equal(t, domain.PaymentStatusPaid, created.PaymentStatus)
	require.Len(t, created.OrderItems, 2)
	assert.Equal(t, 25000.0, created.OrderItems[0].Price)
	assert.Nil(t, created.CardNumber)
}

func TestCreateOrder_RejectsInactiveShift(t *testing.T) {
	shiftRepo := &fakeShiftRepo{shifts: map[uint]domain.Shift{
		7: {ID: 7, IsActive: false},
	}}
	svc := NewOrderService(&fakeOrderRepo{}, shiftRepo, testCardKey)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 1}},
		PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrShiftNotActive)
}

func TestCreateOrder_RejectsUnknownShift(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, &fakeShiftRepo{shifts: map[uint]domain.Shift{}}, testCardKey)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       99,
		Cart:          []CartItem{{ProductID: 1, Quantity: 1}},
		PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, postgres.ErrShiftNotFound)
}

func TestCreateOrder_ValidatesCartAndPayment(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, activeShiftRepo(), testCardKey)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 0}},
		PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 1}},
		PaymentMethod: "CHEQUE",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCreateOrder_DebitRequiresCardNumber(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{prices: map[uint]float64{1: 10000}}, activeShiftRepo(), testCardKey)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 1}},
		PaymentMethod: domain.PaymentDebit,
	})
	assert.ErrorIs(t, err, ErrCardNumberRequired)
}

func TestCreateOrder_EncryptsCardNumber(t *testing.T) {
	orderRepo := &fakeOrderRepo{prices: map[uint]float64{1: 10000}}
	svc := NewOrderService(orderRepo, activeShiftRepo(), testCardKey)

	created, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 1}},
		PaymentMethod: domain.PaymentDebit,
		CardNumber:    "4111111111111111",
	})
	require.NoError(t, err)

	require.NotNil(t, created.CardNumber)
	assert.NotContains(t, *created.CardNumber, "4111111111111111")
	require.NotNil(t, created.CardLast4)
	assert.Equal(t, "1111", *created.CardLast4)
}

func TestCreateOrder_InsufficientStockPassedThrough(t *testing.T) {
	orderRepo := &fakeOrderRepo{createErr: postgres.ErrInsufficientStock}
	svc := NewOrderService(orderRepo, activeShiftRepo(), testCardKey)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		ShiftID:       7,
		Cart:          []CartItem{{ProductID: 1, Quantity: 3}},
		PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, postgres.ErrInsufficientStock)
}

func TestGetDailyShiftSummary_SplitsByPaymentMethod(t *testing.T) {
	endCash := 140000.0
	shiftRepo := &fakeShiftRepo{byDay: []domain.Shift{
		{
			ID:        3,
			ShiftType: domain.ShiftOpening,
			User:      domain.User{FullName: "Budi Santoso"},
			StartCash: 100000,
			EndCash:   &endCash,
			Orders: []domain.Order{
				{TotalPrice: 25000, PaymentMethod: domain.PaymentCash},
				{TotalPrice: 30000, PaymentMethod: domain.PaymentDebit},
				{TotalPrice: 15000, PaymentMethod: domain.PaymentCash},
			},
		},
	}}
	svc := NewOrderService(&fakeOrderRepo{}, shiftRepo, testCardKey)

	summary, err := svc.GetDailyShiftSummary(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, summary, 1)

	row := summary[0]
	assert.Equal(t, uint(3), row.ShiftID)
	assert.Equal(t, "Budi Santoso", row.FullName)
	assert.Equal(t, 3, row.TransactionCount)
	assert.Equal(t, 40000.0, row.CashTotal)
	assert.Equal(t, 30000.0, row.DebitTotal)
	require.NotNil(t, row.EndCash)
	assert.Equal(t, 140000.0, *row.EndCash)
}

func TestGetDailyOrderDetails_FlattensItems(t *testing.T) {
	orderRepo := &fakeOrderRepo{dayOrders: []domain.Order{
		{
			ID: 10,
			OrderItems: []domain.OrderItem{
				{Product: domain.Product{Name: "Es Kopi Susu"}, Price: 25000, Quantity: 2},
			},
		},
	}}
	svc := NewOrderService(orderRepo, &fakeShiftRepo{}, testCardKey)

	details, err := svc.GetDailyOrderDetails(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, "Es Kopi Susu", details[0].Items[0].Name)
	assert.Equal(t, 25000.0, details[0].Items[0].Price)
	assert.Equal(t, 2, details[0].Items[0].Quantity)
}
