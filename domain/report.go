package domain

import "time"

// Read-only shapes returned by the reporting endpoints. Field names
// follow the web client contract.

type DailyTransactions struct {
	TotalTransactions int64   `json:"totalTransactions"`
	TotalAmount       float64 `json:"totalAmount"`
}

type ProductSales struct {
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	Category     string `json:"category"`
	SoldQuantity int64  `json:"soldQuantity"`
}

type ShiftSalesSummary struct {
	ShiftID          uint     `json:"shiftId"`
	ShiftType        string   `json:"shiftType"`
	FullName         string   `json:"fullName"`
	StartCash        float64  `json:"startCash"`
	EndCash          *float64 `json:"endCash"`
	TransactionCount int      `json:"transactionCount"`
	CashTotal        float64  `json:"cashTotal"`
	DebitTotal       float64  `json:"debitTotal"`
}

type OrderDetailItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderDetail struct {
	ID        uint              `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Items     []OrderDetailItem `json:"items"`
}

// ShiftTransactionSummary backs the cashier sales screen for the
// user's currently active shift.
type ShiftTransactionSummary struct {
	CashTransactions  float64 `json:"cashTransactions"`
	DebitTransactions float64 `json:"debitTransactions"`
}
