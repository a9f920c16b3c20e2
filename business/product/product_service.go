package product

import (
	"context"
	"errors"
	"strings"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"
)

var ErrInvalidCategory = errors.New("category must be COFFEE, TEA or CHOCOLATE")

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context, filter postgres.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

// GetProducts backs both the back-office table and the cashier menu:
// category filter (case insensitive), name search, stock sort.
func (s *productService) GetProducts(ctx context.Context, category, search, sort string) ([]domain.Product, error) {
	filter := postgres.ProductFilter{
		Search:  search,
		SortAsc: sort == "asc",
	}

	if category != "" {
		filter.Category = strings.ToUpper(category)
		if !domain.ValidCategories[filter.Category] {
			return nil, ErrInvalidCategory
		}
	}

	return s.productRepo.FindAll(ctx, filter)
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Category = strings.ToUpper(product.Category)
	if !domain.ValidCategories[product.Category] {
		return nil, ErrInvalidCategory
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create product", err)
		return nil, err
	}

	return product, nil
}

// UpdateInput carries a partial update, nil fields keep the stored
// value. The back-office omits the image when it was not replaced.
type UpdateInput struct {
	Name     *string
	Category *string
	Price    *float64
	Stock    *int
	Image    *string
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, update UpdateInput) (*domain.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		existing.Name = *update.Name
	}
	if update.Category != nil && *update.Category != "" {
		category := strings.ToUpper(*update.Category)
		if !domain.ValidCategories[category] {
			return nil, ErrInvalidCategory
		}
		existing.Category = category
	}
	if update.Price != nil {
		existing.Price = *update.Price
	}
	if update.Stock != nil {
		existing.Stock = *update.Stock
	}
	if update.Image != nil && *update.Image != "" {
		existing.Image = update.Image
	}

	if err := s.productRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update product", err)
		return nil, err
	}

	return &existing, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}
