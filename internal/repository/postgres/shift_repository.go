package postgres

import (
	"context"
	"errors"
	"time"

	"kopikasir/domain"

	"gorm.io/gorm"
)

type ShiftRepository struct {
	DB *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{
		DB: db,
	}
}

func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	if err := r.DB.WithContext(ctx).Create(shift).Error; err != nil {
		return err
	}

	return nil
}

func (r *ShiftRepository) FindByID(ctx context.Context, id uint) (domain.Shift, error) {
	var shift domain.Shift

	err := r.DB.WithContext(ctx).First(&shift, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Shift{}, ErrShiftNotFound
		}
		return domain.Shift{}, err
	}

	return shift, nil
}

func (r *ShiftRepository) FindActiveByUser(ctx context.Context, userID uint) (domain.Shift, error) {
	var shift domain.Shift

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Shift{}, ErrShiftNotFound
		}
		return domain.Shift{}, err
	}

	return shift, nil
}

// End closes the shift: clears the active flag and stamps the end
// time and closing cash in one update.
func (r *ShiftRepository) End(ctx context.Context, id uint, endTime time.Time, endCash float64) (domain.Shift, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Shift{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"end_time":  endTime,
			"end_cash":  endCash,
			"is_active": false,
		})
	if result.Error != nil {
		return domain.Shift{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Shift{}, ErrShiftNotFound
	}

	return r.FindByID(ctx, id)
}

// FindByDateWithOrders loads the shifts started within [from, to)
// together with their owner and orders, for the daily summary report.
// The user preload is unscoped so shifts of since-deleted cashiers
// still resolve a name.
func (r *ShiftRepository) FindByDateWithOrders(ctx context.Context, from, to time.Time) ([]domain.Shift, error) {
	var shifts []domain.Shift

	err := r.DB.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Orders").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	return shifts, nil
}
