package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
)

// SaleRepository defines the interface for sale-related database operations.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	CreateSaleItem(executor SQLExecutor, item *models.SaleItem) (int64, error)
	GetSaleByID(id int64) (*models.Sale, error)
	GetSaleItemsBySaleID(saleID int64) ([]models.SaleItem, error)
	GetSaleItemsWithProductNames(saleID int64) ([]models.SaleItem, error)
	GetSalesHistory() ([]models.Sale, error)
	GetSalesToday() ([]models.Sale, error)
	GetRecentSales(limit int) ([]models.Sale, error)
	UpdateSaleStatus(executor SQLExecutor, id int64, status string) error
	CountSaleItemsByProduct(productID int64) (int, error)
	GetSalesTotal() (float64, error)
	GetSalesTotalToday() (float64, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (customer_name, customer_address, total_amount, status)
	          VALUES (?, ?, ?, ?)`
	result, err := executor.Exec(query, sale.CustomerName, sale.CustomerAddress, sale.TotalAmount, sale.Status)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading sale insert id: %v", ErrDatabaseError, err)
	}
	sale.ID = id
	return id, nil
}

func (r *saleRepository) CreateSaleItem(executor SQLExecutor, item *models.SaleItem) (int64, error) {
	query := `INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price)
	          VALUES (?, ?, ?, ?, ?)`
	result, err := executor.Exec(query, item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale item: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading sale item insert id: %v", ErrDatabaseError, err)
	}
	item.ID = id
	return id, nil
}

func (r *saleRepository) GetSaleByID(id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT id, customer_name, customer_address, total_amount, status, created_at
	          FROM sales WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(
		&sale.ID, &sale.CustomerName, &sale.CustomerAddress, &sale.TotalAmount, &sale.Status, &sale.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, id, err)
	}
	return sale, nil
}

func (r *saleRepository) GetSaleItemsBySaleID(saleID int64) ([]models.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, product_name, quantity, unit_price
	          FROM sale_items WHERE sale_id = ?`
	return r.querySaleItems(query, saleID)
}

// GetSaleItemsWithProductNames joins the current catalog name onto each line,
// overriding the stored snapshot for display.
func (r *saleRepository) GetSaleItemsWithProductNames(saleID int64) ([]models.SaleItem, error) {
	query := `SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price
	          FROM sale_items si
	          JOIN products p ON si.product_id = p.id
	          WHERE si.sale_id = ?`
	return r.querySaleItems(query, saleID)
}

func (r *saleRepository) querySaleItems(query string, saleID int64) ([]models.SaleItem, error) {
	rows, err := r.db.Query(query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting sale items for sale ID %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	items := []models.SaleItem{}
	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: scanning sale item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *saleRepository) GetSalesHistory() ([]models.Sale, error) {
	query := `SELECT s.id, s.customer_name, s.customer_address, s.total_amount, s.status, s.created_at,
	            (SELECT COUNT(*) FROM sale_items WHERE sale_id = s.id) AS items_count
	          FROM sales s
	          ORDER BY s.created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting sales history: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.CustomerAddress, &s.TotalAmount, &s.Status, &s.CreatedAt, &s.ItemsCount); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales history: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) GetSalesToday() ([]models.Sale, error) {
	query := `SELECT id, customer_name, customer_address, total_amount, status, created_at
	          FROM sales
	          WHERE DATE(created_at) = CURDATE()
	          ORDER BY created_at DESC`
	return r.querySales(query)
}

func (r *saleRepository) GetRecentSales(limit int) ([]models.Sale, error) {
	query := `SELECT id, customer_name, customer_address, total_amount, status, created_at
	          FROM sales
	          ORDER BY created_at DESC
	          LIMIT ?`
	return r.querySales(query, limit)
}

func (r *saleRepository) querySales(query string, args ...interface{}) ([]models.Sale, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.CustomerAddress, &s.TotalAmount, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) UpdateSaleStatus(executor SQLExecutor, id int64, status string) error {
	result, err := executor.Exec(`UPDATE sales SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("%w: updating status for sale ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetSaleByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *saleRepository) CountSaleItemsByProduct(productID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sale_items WHERE product_id = ?`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting sale items for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return count, nil
}

func (r *saleRepository) GetSalesTotal() (float64, error) {
	var total float64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(total_amount), 0) FROM sales`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing sales: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *saleRepository) GetSalesTotalToday() (float64, error) {
	var total float64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE DATE(created_at) = CURDATE()`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing today's sales: %v", ErrDatabaseError, err)
	}
	return total, nil
}
