package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kopikasir/business/product"
	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadSize = 2 << 20 // 2MB

type ProductService interface {
	GetProducts(ctx context.Context, category, search, sort string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint, update product.UpdateInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	uploadDir      string
	timeout        time.Duration
}

func NewProductHandler(productService ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		uploadDir:      uploadDir,
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Image    string  `json:"image" validate:"required"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Image    *string  `json:"image"`
}

// GetProducts serves both the back-office table and the cashier menu
// route: optional category, name search, stock sort direction.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProducts(ctx,
		c.QueryParam("category"),
		c.QueryParam("search"),
		c.QueryParam("sort"),
	)
	if err != nil {
		if errors.Is(err, product.ErrInvalidCategory) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to fetch products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to fetch products."})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    products,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Image:    &req.Image,
	})
	if err != nil {
		if errors.Is(err, product.ErrInvalidCategory) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to create product."})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    newProduct,
	})
}

// UploadImage stores a multipart image under the uploads dir with a
// random name and returns the public path. The product row references
// that path afterwards.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "No file uploaded."})
	}

	if fileHeader.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "File exceeds the 2MB limit"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Only image files are allowed"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "File upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "File upload failed"})
	}

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		logger.Error("Failed to create upload target", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "File upload failed"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		logger.Error("Failed to write uploaded file", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "File upload failed"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":  true,
		"filePath": fmt.Sprintf("/uploads/%s", filename),
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, uint(productID), product.UpdateInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, product.ErrInvalidCategory) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to update product."})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, uint(productID)); err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to delete product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to delete product."})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}
