package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryCoffee    = "COFFEE"
	CategoryTea       = "TEA"
	CategoryChocolate = "CHOCOLATE"
)

var ValidCategories = map[string]bool{
	CategoryCoffee:    true,
	CategoryTea:       true,
	CategoryChocolate: true,
}

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     category    TEXT NOT NULL,
//     price       NUMERIC NOT NULL,
//     stock       INTEGER NOT NULL,
//     image       TEXT,
//     created_at  TIMESTAMPTZ,
//     updated_at  TIMESTAMPTZ,
//     deleted_at  TIMESTAMPTZ
// );

type Product struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Category  string         `gorm:"column:category;not null" json:"category"`
	Price     float64        `gorm:"column:price;type:numeric;not null" json:"price"`
	Stock     int            `gorm:"column:stock;not null" json:"stock"`
	Image     *string        `gorm:"column:image" json:"image"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
