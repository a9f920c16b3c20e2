package shift

import (
	"context"
	"errors"
	"time"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"
	"kopikasir/pkg/metrics"
)

var (
	ErrShiftAlreadyActive = errors.New("user already has an active shift")
	ErrInvalidShiftType   = errors.New("shift type must be OPENING or CLOSING")
)

// ShiftRepository contract interface
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	FindByID(ctx context.Context, id uint) (domain.Shift, error)
	FindActiveByUser(ctx context.Context, userID uint) (domain.Shift, error)
	End(ctx context.Context, id uint, endTime time.Time, endCash float64) (domain.Shift, error)
}

// OrderSummarizer is the slice of the order repository the shift
// summary needs.
type OrderSummarizer interface {
	SumByPaymentMethod(ctx context.Context, shiftID uint) (map[string]float64, error)
}

type shiftService struct {
	shiftRepo ShiftRepository
	orderRepo OrderSummarizer
}

func NewShiftService(shiftRepo ShiftRepository, orderRepo OrderSummarizer) *shiftService {
	return &shiftService{
		shiftRepo: shiftRepo,
		orderRepo: orderRepo,
	}
}

// StartShift opens a shift with the cashier's opening float. A user
// can hold at most one active shift at a time.
func (s *shiftService) StartShift(ctx context.Context, userID uint, startCash float64, shiftType string) (domain.Shift, error) {
	if !domain.ValidShiftTypes[shiftType] {
		return domain.Shift{}, ErrInvalidShiftType
	}

	if startCash < 0 {
		return domain.Shift{}, errors.New("start cash cannot be negative")
	}

	_, err := s.shiftRepo.FindActiveByUser(ctx, userID)
	if err == nil {
		return domain.Shift{}, ErrShiftAlreadyActive
	}
	if !errors.Is(err, postgres.ErrShiftNotFound) {
		return domain.Shift{}, err
	}

	shift := domain.Shift{
		UserID:    userID,
		ShiftType: shiftType,
		StartTime: time.Now(),
		StartCash: startCash,
		IsActive:  true,
	}

	if err := s.shiftRepo.Create(ctx, &shift); err != nil {
		logger.Error("Failed to create shift", err)
		return domain.Shift{}, err
	}

	metrics.ShiftsStarted.Inc()
	return shift, nil
}

// EndShift closes an active shift. The closing cash defaults to the
// opening float when the cashier does not count the drawer.
func (s *shiftService) EndShift(ctx context.Context, shiftID uint, endCash *float64) (domain.Shift, error) {
	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return domain.Shift{}, err
	}

	if !shift.IsActive {
		return domain.Shift{}, postgres.ErrShiftNotFound
	}

	closingCash := shift.StartCash
	if endCash != nil {
		closingCash = *endCash
	}

	return s.shiftRepo.End(ctx, shiftID, time.Now(), closingCash)
}

func (s *shiftService) GetActiveShift(ctx context.Context, userID uint) (domain.Shift, error) {
	return s.shiftRepo.FindActiveByUser(ctx, userID)
}

// GetTransactionSummary sums the active shift's orders per payment
// method for the cashier sales screen. No active shift means zeros,
// not an error, the screen renders either way.
func (s *shiftService) GetTransactionSummary(ctx context.Context, userID uint) (domain.ShiftTransactionSummary, error) {
	shift, err := s.shiftRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrShiftNotFound) {
			return domain.ShiftTransactionSummary{}, nil
		}
		return domain.ShiftTransactionSummary{}, err
	}

	sums, err := s.orderRepo.SumByPaymentMethod(ctx, shift.ID)
	if err != nil {
		return domain.ShiftTransactionSummary{}, err
	}

	return domain.ShiftTransactionSummary{
		CashTransactions:  sums[domain.PaymentCash],
		DebitTransactions: sums[domain.PaymentDebit],
	}, nil
}
