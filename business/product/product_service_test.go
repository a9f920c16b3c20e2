//go:build !integration

package product

import (
	"context"
	"testing"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products   map[uint]*domain.Product
	nextID     uint
	lastFilter postgres.ProductFilter
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]*domain.Product), nextID: 1}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return domain.Product{}, postgres.ErrProductNotFound
	}
	return *product, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter postgres.ProductFilter) ([]domain.Product, error) {
	f.lastFilter = filter
	products := make([]domain.Product, 0, len(f.products))
	for _, product := range f.products {
		products = append(products, *product)
	}
	return products, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return postgres.ErrProductNotFound
	}
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.products[id]; !ok {
		return postgres.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(v float64) *float64 { return &v }

func TestGetProducts_NormalizesCategory(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	_, err := svc.GetProducts(context.Background(), "coffee", "latte", "asc")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryCoffee, repo.lastFilter.Category)
	assert.Equal(t, "latte", repo.lastFilter.Search)
	assert.True(t, repo.lastFilter.SortAsc)
}

func TestGetProducts_RejectsUnknownCategory(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.GetProducts(context.Background(), "SODA", "", "")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCreateProduct_ValidatesCategory(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Cola", Category: "SODA", Price: 10000, Stock: 5,
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	created, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Es Teh", Category: "tea", Price: 8000, Stock: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTea, created.Category)
}

func TestUpdateProduct_PartialMerge(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	image := "/uploads/old.png"
	created, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Kopi Tubruk", Category: domain.CategoryCoffee, Price: 12000, Stock: 10, Image: &image,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateInput{
		Price: f64Ptr(15000),
		Stock: intPtr(7),
	})
	require.NoError(t, err)

	assert.Equal(t, "Kopi Tubruk", updated.Name, "unsent fields keep their value")
	assert.Equal(t, 15000.0, updated.Price)
	assert.Equal(t, 7, updated.Stock)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "/uploads/old.png", *updated.Image)
}

func TestUpdateProduct_ReplacesImageWhenSent(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	image := "/uploads/old.png"
	created, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Cokelat Panas", Category: domain.CategoryChocolate, Price: 18000, Stock: 4, Image: &image,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateInput{
		Image: strPtr("/uploads/new.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "/uploads/new.png", *updated.Image)
}

func TestUpdateProduct_UnknownID(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.UpdateProduct(context.Background(), 99, UpdateInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, postgres.ErrProductNotFound)
}
