package services

import (
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
	"pos_backend/internal/repositories"
	"pos_backend/pkg/utils"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRequest carries the writable fields of a catalog product.
type ProductRequest struct {
	Name          string  `json:"name"`
	ServiceType   string  `json:"service_type"`
	ContainerType string  `json:"container_type"`
	Price         float64 `json:"price"`
	Stocks        int     `json:"stocks"`
}

// UpdateStocksRequest sets the absolute on-hand count of a product.
type UpdateStocksRequest struct {
	Stocks *int `json:"stocks"`
}

type ProductService interface {
	GetProducts() ([]models.Product, error)
	GetProduct(productID int64) (*models.Product, error)
	CreateProduct(req ProductRequest) (*models.Product, error)
	UpdateProduct(productID int64, req ProductRequest) (*models.Product, error)
	UpdateStocks(productID int64, req UpdateStocksRequest) (*models.Product, error)
	DeleteProduct(productID int64) error
}

type productService struct {
	productRepo repositories.ProductRepository
	saleRepo    repositories.SaleRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, sr repositories.SaleRepository, db *sql.DB) ProductService {
	return &productService{
		productRepo: pr,
		saleRepo:    sr,
		db:          db,
	}
}

func (s *productService) GetProducts() ([]models.Product, error) {
	products, err := s.productRepo.GetProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(productID int64) (*models.Product, error) {
	return s.getProduct(productID)
}

func (s *productService) CreateProduct(req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	product := req.toModel()
	id, err := s.productRepo.CreateProduct(s.db, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.productRepo.GetProductByID(id)
}

func (s *productService) UpdateProduct(productID int64, req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.getProduct(productID); err != nil {
		return nil, err
	}
	product := req.toModel()
	product.ID = productID
	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}
	return s.productRepo.GetProductByID(productID)
}

func (s *productService) UpdateStocks(productID int64, req UpdateStocksRequest) (*models.Product, error) {
	if req.Stocks == nil {
		return nil, fmt.Errorf("%w: stocks is required", ErrValidation)
	}
	if *req.Stocks < 0 {
		return nil, fmt.Errorf("%w: stocks cannot be negative", ErrValidation)
	}
	if _, err := s.getProduct(productID); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStocks(s.db, productID, *req.Stocks); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update stocks for product %d: %w", productID, err)
	}
	return s.productRepo.GetProductByID(productID)
}

// DeleteProduct refuses when the product appears in any sale line so
// historical receipts keep resolving.
func (s *productService) DeleteProduct(productID int64) error {
	if _, err := s.getProduct(productID); err != nil {
		return err
	}
	count, err := s.saleRepo.CountSaleItemsByProduct(productID)
	if err != nil {
		return fmt.Errorf("failed to count sale items for product %d: %w", productID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete product, it exists in sales records", ErrConflict)
	}
	if err := s.productRepo.DeleteProduct(s.db, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	return nil
}

func (s *productService) getProduct(productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}
	return product, nil
}

func (r ProductRequest) validate() error {
	if utils.IsEmpty(r.Name) {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if r.Stocks < 0 {
		return fmt.Errorf("%w: stocks cannot be negative", ErrValidation)
	}
	return nil
}

func (r ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:          r.Name,
		ServiceType:   utils.NewNullString(r.ServiceType),
		ContainerType: utils.NewNullString(r.ContainerType),
		Price:         r.Price,
		Stocks:        r.Stocks,
	}
}
