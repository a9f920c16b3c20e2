package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kopikasir/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

// CreateWithStockDecrement persists the order, its items and the stock
// decrements in a single transaction. Product rows are locked FOR
// UPDATE before the stock check, so two concurrent orders against the
// same product serialize and stock can never go negative. The caller
// supplies ProductID and Quantity per item; unit price snapshots and
// the order total are filled in here from the locked rows.
func (r *OrderRepository) CreateWithStockDecrement(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64

		for i := range order.OrderItems {
			item := &order.OrderItems[i]

			var product domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: product %q has %d left, %d requested",
					ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
			}

			item.Price = product.Price
			total += product.Price * float64(item.Quantity)

			result := tx.Model(&domain.Product{}).
				Where("id = ?", product.ID).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
		}

		order.TotalPrice = total

		if err := tx.Omit("OrderItems.Product").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// DailyTransactions counts orders and sums totals for [from, to).
func (r *OrderRepository) DailyTransactions(ctx context.Context, from, to time.Time) (domain.DailyTransactions, error) {
	var result domain.DailyTransactions

	err := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Select("COUNT(id) AS total_transactions, COALESCE(SUM(total_price), 0) AS total_amount").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&result).Error
	if err != nil {
		return domain.DailyTransactions{}, err
	}

	return result, nil
}

// DailyProductSales groups sold quantities per product for [from, to),
// best seller first. Products are joined without the soft-delete scope
// so already-removed menu items still show up in history.
func (r *OrderRepository) DailyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSales, error) {
	var rows []domain.ProductSales

	err := r.DB.WithContext(ctx).Table("order_items").
		Select("order_items.product_id AS product_id, products.name AS product_name, products.category AS category, SUM(order_items.quantity) AS sold_quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("order_items.product_id, products.name, products.category").
		Order("sold_quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// FindByDateWithItems loads the orders of [from, to) with items and
// product rows (unscoped, same history reasoning as above), oldest
// first.
func (r *OrderRepository) FindByDateWithItems(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).
		Preload("OrderItems.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// SumByPaymentMethod returns the order totals of one shift keyed by
// payment method.
func (r *OrderRepository) SumByPaymentMethod(ctx context.Context, shiftID uint) (map[string]float64, error) {
	var rows []struct {
		PaymentMethod string
		Total         float64
	}

	err := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Select("payment_method, COALESCE(SUM(total_price), 0) AS total").
		Where("shift_id = ?", shiftID).
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64, len(rows))
	for _, row := range rows {
		sums[row.PaymentMethod] = row.Total
	}

	return sums, nil
}
