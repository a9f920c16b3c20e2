package domain

import "time"

const (
	ShiftOpening = "OPENING"
	ShiftClosing = "CLOSING"
)

var ValidShiftTypes = map[string]bool{
	ShiftOpening: true,
	ShiftClosing: true,
}

type Shift struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"column:user_id;not null;index" json:"userId"`
	User      User       `gorm:"foreignKey:UserID" json:"user"`
	ShiftType string     `gorm:"column:shift_type;not null" json:"shiftType"`
	StartTime time.Time  `gorm:"column:start_time;not null" json:"startTime"`
	EndTime   *time.Time `gorm:"column:end_time" json:"endTime"`
	StartCash float64    `gorm:"column:start_cash;type:numeric;not null" json:"startCash"`
	EndCash   *float64   `gorm:"column:end_cash;type:numeric" json:"endCash"`
	IsActive  bool       `gorm:"column:is_active;not null;default:false" json:"isActive"`
	Orders    []Order    `gorm:"foreignKey:ShiftID" json:"orders,omitempty"`
}

func (Shift) TableName() string {
	return "shifts"
}
