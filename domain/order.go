package domain

import "time"

const (
	PaymentCash  = "CASH"
	PaymentDebit = "DEBIT"

	PaymentStatusPaid = "PAID"
)

var ValidPaymentMethods = map[string]bool{
	PaymentCash:  true,
	PaymentDebit: true,
}

// Order is immutable once created. CardNumber holds the AES-CBC
// ciphertext for DEBIT payments, never the raw PAN.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ShiftID       uint        `gorm:"column:shift_id;not null;index" json:"shiftId"`
	TotalPrice    float64     `gorm:"column:total_price;type:numeric;not null" json:"totalPrice"`
	PaymentMethod string      `gorm:"column:payment_method;not null" json:"paymentMethod"`
	PaymentStatus string      `gorm:"column:payment_status;not null" json:"paymentStatus"`
	CardNumber    *string     `gorm:"column:card_number" json:"-"`
	CardLast4     *string     `gorm:"column:card_last4" json:"cardLast4,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID uint    `gorm:"column:product_id;not null" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric;not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
