package order

import (
	"context"
	"errors"
	"time"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"
	"kopikasir/pkg/metrics"

	"github.com/pobyzaarif/goshortcute"
)

var (
	ErrShiftNotActive       = errors.New("no active shift for this order")
	ErrEmptyCart            = errors.New("cart cannot be empty")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInvalidPaymentMethod = errors.New("payment method must be CASH or DEBIT")
	ErrCardNumberRequired   = errors.New("card number is required for debit payments")
)

// OrderRepository contract interface
type OrderRepository interface {
	CreateWithStockDecrement(ctx context.Context, order *domain.Order) error
	FindAll(ctx context.Context) ([]domain.Order, error)
	DailyTransactions(ctx context.Context, from, to time.Time) (domain.DailyTransactions, error)
	DailyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSales, error)
	FindByDateWithItems(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}

// ShiftRepository contract interface
type ShiftRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Shift, error)
	FindByDateWithOrders(ctx context.Context, from, to time.Time) ([]domain.Shift, error)
}

type CartItem struct {
	ProductID uint
	Quantity  int
}

type CreateOrderInput struct {
	ShiftID       uint
	Cart          []CartItem
	PaymentMethod string
	CardNumber    string
}

type orderService struct {
	orderRepo OrderRepository
	shiftRepo ShiftRepository
	cardKey   string
}

func NewOrderService(orderRepo OrderRepository, shiftRepo ShiftRepository, cardKey string) *orderService {
	return &orderService{
		orderRepo: orderRepo,
		shiftRepo: shiftRepo,
		cardKey:   cardKey,
	}
}

// CreateOrder validates the cart and payment, then hands the order to
// the repository which commits order, items and stock decrements in
// one transaction. Unit prices and the total come from the database
// inside that transaction, never from the client.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (domain.Order, error) {
	start := time.Now()

	shift, err := s.shiftRepo.FindByID(ctx, input.ShiftID)
	if err != nil {
		return domain.Order{}, err
	}
	if !shift.IsActive {
		return domain.Order{}, ErrShiftNotActive
	}

	if len(input.Cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	for _, item := range input.Cart {
		if item.Quantity <= 0 {
			return domain.Order{}, ErrInvalidQuantity
		}
	}

	if !domain.ValidPaymentMethods[input.PaymentMethod] {
		return domain.Order{}, ErrInvalidPaymentMethod
	}

	order := domain.Order{
		ShiftID:       input.ShiftID,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPaid,
	}

	if input.PaymentMethod == domain.PaymentDebit {
		if input.CardNumber == "" {
			return domain.Order{}, ErrCardNumberRequired
		}

		encrypted, err := s.encryptCardNumber(input.CardNumber)
		if err != nil {
			logger.Error("Failed to encrypt card number", err)
			return domain.Order{}, errors.New("failed to process card number")
		}

		last4 := input.CardNumber
		if len(last4) > 4 {
			last4 = last4[len(last4)-4:]
		}

		order.CardNumber = &encrypted
		order.CardLast4 = &last4
	}

	order.OrderItems = make([]domain.OrderItem, len(input.Cart))
	for i, item := range input.Cart {
		order.OrderItems[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	if err := s.orderRepo.CreateWithStockDecrement(ctx, &order); err != nil {
		if errors.Is(err, postgres.ErrInsufficientStock) {
			metrics.OrdersRejected.Inc()
		}
		return domain.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues(order.PaymentMethod).Inc()
	metrics.OrderCreateLatency.Observe(time.Since(start).Seconds())

	return order, nil
}

func (s *orderService) encryptCardNumber(cardNumber string) (string, error) {
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(cardNumber), []byte(s.cardKey))
	if err != nil {
		return "", err
	}

	return goshortcute.StringtoBase64Encode(encrypted), nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func dayRange(day time.Time) (time.Time, time.Time) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}

func (s *orderService) GetDailyTransactions(ctx context.Context, day time.Time) (domain.DailyTransactions, error) {
	from, to := dayRange(day)
	return s.orderRepo.DailyTransactions(ctx, from, to)
}

func (s *orderService) GetDailyProductSales(ctx context.Context, day time.Time) ([]domain.ProductSales, error) {
	from, to := dayRange(day)
	return s.orderRepo.DailyProductSales(ctx, from, to)
}

// GetDailyShiftSummary reports every shift started that day with its
// transaction count and cash/debit revenue split.
func (s *orderService) GetDailyShiftSummary(ctx context.Context, day time.Time) ([]domain.ShiftSalesSummary, error) {
	from, to := dayRange(day)

	shifts, err := s.shiftRepo.FindByDateWithOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := make([]domain.ShiftSalesSummary, 0, len(shifts))
	for _, shift := range shifts {
		row := domain.ShiftSalesSummary{
			ShiftID:          shift.ID,
			ShiftType:        shift.ShiftType,
			FullName:         shift.User.FullName,
			StartCash:        shift.StartCash,
			EndCash:          shift.EndCash,
			TransactionCount: len(shift.Orders),
		}

		for _, order := range shift.Orders {
			switch order.PaymentMethod {
			case domain.PaymentCash:
				row.CashTotal += order.TotalPrice
			case domain.PaymentDebit:
				row.DebitTotal += order.TotalPrice
			}
		}

		summary = append(summary, row)
	}

	return summary, nil
}

func (s *orderService) GetDailyOrderDetails(ctx context.Context, day time.Time) ([]domain.OrderDetail, error) {
	from, to := dayRange(day)

	orders, err := s.orderRepo.FindByDateWithItems(ctx, from, to)
	if err != nil {
		return nil, err
	}

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := domain.OrderDetail{
			ID:        order.ID,
			CreatedAt: order.CreatedAt,
			Items:     make([]domain.OrderDetailItem, 0, len(order.OrderItems)),
		}

		for _, item := range order.OrderItems {
			detail.Items = append(detail.Items, domain.OrderDetailItem{
				Name:     item.Product.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}

		details = append(details, detail)
	}

	return details, nil
}
