package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	GetProducts() ([]models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProductForUpdate(executor SQLExecutor, id int64) (*models.Product, error)
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	UpdateStocks(executor SQLExecutor, id int64, stocks int) error
	DecrementStocks(executor SQLExecutor, id int64, quantity int) error
	DeleteProduct(executor SQLExecutor, id int64) error
	CountProducts() (int, error)
	GetLowStockProducts(threshold int) ([]models.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, service_type, container_type, price, stocks, created_at, updated_at`

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.ServiceType, &p.ContainerType, &p.Price, &p.Stocks, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	err := scanProduct(r.db.QueryRow(query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

// GetProductForUpdate locks the product row for the duration of the enclosing
// transaction. Must be called with a *sql.Tx executor.
func (r *productRepository) GetProductForUpdate(executor SQLExecutor, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? FOR UPDATE`
	err := scanProduct(executor.QueryRow(query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking product ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, service_type, container_type, price, stocks)
	          VALUES (?, ?, ?, ?, ?)`
	result, err := executor.Exec(query,
		product.Name, product.ServiceType, product.ContainerType, product.Price, product.Stocks)
	if err != nil {
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading product insert id: %v", ErrDatabaseError, err)
	}
	product.ID = id
	return id, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	          SET name = ?, service_type = ?, container_type = ?, price = ?, stocks = ?
	          WHERE id = ?`
	result, err := executor.Exec(query,
		product.Name, product.ServiceType, product.ContainerType, product.Price, product.Stocks, product.ID)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// MySQL reports 0 affected rows for no-op updates too, so
		// distinguish a missing row from an unchanged one.
		if _, err := r.GetProductByID(product.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) UpdateStocks(executor SQLExecutor, id int64, stocks int) error {
	result, err := executor.Exec(`UPDATE products SET stocks = ? WHERE id = ?`, stocks, id)
	if err != nil {
		return fmt.Errorf("%w: updating stocks for product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetProductByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) DecrementStocks(executor SQLExecutor, id int64, quantity int) error {
	result, err := executor.Exec(`UPDATE products SET stocks = stocks - ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("%w: decrementing stocks for product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 && quantity != 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product ID %d is referenced by sale records", ErrForeignKeyViolation, id)
		}
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) CountProducts() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting products: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *productRepository) GetLowStockProducts(threshold int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stocks < ? ORDER BY stocks ASC`
	rows, err := r.db.Query(query, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: getting low stock products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock products: %v", ErrDatabaseError, err)
	}
	return products, nil
}
