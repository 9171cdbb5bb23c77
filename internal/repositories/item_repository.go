package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
)

// Item listing filters.
const (
	ItemFilterAll        = "all"
	ItemFilterLowStock   = "low-stock"
	ItemFilterOutOfStock = "out-of-stock"
	ItemFilterInStock    = "in-stock"
)

// ItemRepository defines the interface for inventory item and stock history
// database operations.
type ItemRepository interface {
	GetItemsByCompany(companyID int64, filter, search string) ([]models.InventoryItem, error)
	GetItemByID(id int64) (*models.InventoryItem, error)
	GetItemForUpdate(executor SQLExecutor, id int64) (*models.InventoryItem, error)
	CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	UpdateQuantity(executor SQLExecutor, id int64, quantity float64) error
	DeleteItem(executor SQLExecutor, id int64) error
	CountItemsByCompany(companyID int64) (int, error)
	CreateStockHistory(executor SQLExecutor, entry *models.StockHistory) (int64, error)
	GetStockHistory(itemID int64) ([]models.StockHistory, error)
	GetCompanyStats(companyID int64) (*models.CompanyStats, error)
	GetGlobalStats() (*models.InventoryStats, error)
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, company_id, name, category, quantity, unit, unit_price, description, sku, low_stock_threshold, last_updated, created_at`

func scanItem(row interface {
	Scan(dest ...interface{}) error
}, item *models.InventoryItem) error {
	return row.Scan(&item.ID, &item.CompanyID, &item.Name, &item.Category, &item.Quantity,
		&item.Unit, &item.UnitPrice, &item.Description, &item.SKU, &item.LowStockThreshold,
		&item.LastUpdated, &item.CreatedAt)
}

func (r *itemRepository) GetItemsByCompany(companyID int64, filter, search string) ([]models.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = ?`
	args := []interface{}{companyID}

	if search != "" {
		query += ` AND (name LIKE ? OR description LIKE ? OR sku LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	switch filter {
	case ItemFilterLowStock:
		query += ` AND quantity <= low_stock_threshold AND quantity > 0`
	case ItemFilterOutOfStock:
		query += ` AND quantity = 0`
	case ItemFilterInStock:
		query += ` AND quantity > low_stock_threshold`
	}

	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting items for company ID %d: %v", ErrDatabaseError, companyID, err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *itemRepository) GetItemByID(id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = ?`
	err := scanItem(r.db.QueryRow(query, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetItemForUpdate locks the item row for the duration of the enclosing
// transaction so concurrent quantity changes serialize.
func (r *itemRepository) GetItemForUpdate(executor SQLExecutor, id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = ? FOR UPDATE`
	err := scanItem(executor.QueryRow(query, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking item ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory_items
	          (company_id, name, category, quantity, unit, unit_price, description, sku, low_stock_threshold)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := executor.Exec(query,
		item.CompanyID, item.Name, item.Category, item.Quantity, item.Unit,
		item.UnitPrice, item.Description, item.SKU, item.LowStockThreshold)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: company ID %d does not exist", ErrForeignKeyViolation, item.CompanyID)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading item insert id: %v", ErrDatabaseError, err)
	}
	item.ID = id
	return id, nil
}

func (r *itemRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory_items
	          SET name = ?, category = ?, quantity = ?, unit = ?, unit_price = ?,
	              description = ?, sku = ?, low_stock_threshold = ?, last_updated = CURRENT_TIMESTAMP
	          WHERE id = ?`
	_, err := executor.Exec(query,
		item.Name, item.Category, item.Quantity, item.Unit, item.UnitPrice,
		item.Description, item.SKU, item.LowStockThreshold, item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	return nil
}

func (r *itemRepository) UpdateQuantity(executor SQLExecutor, id int64, quantity float64) error {
	query := `UPDATE inventory_items SET quantity = ?, last_updated = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := executor.Exec(query, quantity, id)
	if err != nil {
		return fmt.Errorf("%w: updating quantity for item ID %d: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *itemRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) CountItemsByCompany(companyID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE company_id = ?`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting items for company ID %d: %v", ErrDatabaseError, companyID, err)
	}
	return count, nil
}

func (r *itemRepository) CreateStockHistory(executor SQLExecutor, entry *models.StockHistory) (int64, error) {
	query := `INSERT INTO stock_history
	          (item_id, action, quantity_change, new_quantity, reason, notes, created_by)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := executor.Exec(query,
		entry.ItemID, entry.Action, entry.QuantityChange, entry.NewQuantity,
		entry.Reason, entry.Notes, entry.CreatedBy)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock history entry: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading stock history insert id: %v", ErrDatabaseError, err)
	}
	entry.ID = id
	return id, nil
}

func (r *itemRepository) GetStockHistory(itemID int64) ([]models.StockHistory, error) {
	query := `SELECT id, item_id, action, quantity_change, new_quantity, reason, notes, created_by, created_at
	          FROM stock_history
	          WHERE item_id = ?
	          ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stock history for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	defer rows.Close()

	history := []models.StockHistory{}
	for rows.Next() {
		var entry models.StockHistory
		if err := rows.Scan(&entry.ID, &entry.ItemID, &entry.Action, &entry.QuantityChange,
			&entry.NewQuantity, &entry.Reason, &entry.Notes, &entry.CreatedBy, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning stock history entry: %v", ErrDatabaseError, err)
		}
		history = append(history, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock history: %v", ErrDatabaseError, err)
	}
	return history, nil
}

func (r *itemRepository) GetCompanyStats(companyID int64) (*models.CompanyStats, error) {
	stats := &models.CompanyStats{}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE company_id = ?`, companyID).
		Scan(&stats.ItemCount)
	if err != nil {
		return nil, fmt.Errorf("%w: counting company items: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM inventory_items WHERE company_id = ?`, companyID).
		Scan(&stats.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("%w: summing company inventory value: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items
	                     WHERE company_id = ? AND quantity <= low_stock_threshold AND quantity > 0`, companyID).
		Scan(&stats.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("%w: counting low stock items: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE company_id = ? AND quantity = 0`, companyID).
		Scan(&stats.OutOfStockCount)
	if err != nil {
		return nil, fmt.Errorf("%w: counting out of stock items: %v", ErrDatabaseError, err)
	}

	topQuery := `SELECT ` + itemColumns + ` FROM inventory_items
	             WHERE company_id = ?
	             ORDER BY (quantity * unit_price) DESC
	             LIMIT 5`
	rows, err := r.db.Query(topQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting top items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stats.TopItems = []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning top item: %v", ErrDatabaseError, err)
		}
		stats.TopItems = append(stats.TopItems, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top items: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT
	        COALESCE(SUM(CASE WHEN quantity > low_stock_threshold THEN 1 ELSE 0 END), 0),
	        COALESCE(SUM(CASE WHEN quantity <= low_stock_threshold AND quantity > 0 THEN 1 ELSE 0 END), 0),
	        COALESCE(SUM(CASE WHEN quantity = 0 THEN 1 ELSE 0 END), 0)
	      FROM inventory_items WHERE company_id = ?`, companyID).
		Scan(&stats.StockDistribution.InStock, &stats.StockDistribution.LowStock, &stats.StockDistribution.OutOfStock)
	if err != nil {
		return nil, fmt.Errorf("%w: computing stock distribution: %v", ErrDatabaseError, err)
	}

	return stats, nil
}

func (r *itemRepository) GetGlobalStats() (*models.InventoryStats, error) {
	stats := &models.InventoryStats{}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM companies`).Scan(&stats.TotalCompanies)
	if err != nil {
		return nil, fmt.Errorf("%w: counting companies: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items`).Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("%w: counting items: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM inventory_items`).
		Scan(&stats.TotalInventoryValue)
	if err != nil {
		return nil, fmt.Errorf("%w: summing inventory value: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM inventory_items
	                     WHERE quantity <= low_stock_threshold AND quantity > 0`).
		Scan(&stats.LowStockItems)
	if err != nil {
		return nil, fmt.Errorf("%w: counting low stock items: %v", ErrDatabaseError, err)
	}

	recentQuery := `SELECT i.id, i.company_id, i.name, i.category, i.quantity, i.unit, i.unit_price,
	                  i.description, i.sku, i.low_stock_threshold, i.last_updated, i.created_at,
	                  c.name AS company_name
	                FROM inventory_items i
	                JOIN companies c ON i.company_id = c.id
	                ORDER BY i.last_updated DESC
	                LIMIT 10`
	rows, err := r.db.Query(recentQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: getting recent items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stats.RecentItems = []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.Name, &item.Category, &item.Quantity,
			&item.Unit, &item.UnitPrice, &item.Description, &item.SKU, &item.LowStockThreshold,
			&item.LastUpdated, &item.CreatedAt, &item.CompanyName); err != nil {
			return nil, fmt.Errorf("%w: scanning recent item: %v", ErrDatabaseError, err)
		}
		stats.RecentItems = append(stats.RecentItems, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recent items: %v", ErrDatabaseError, err)
	}

	return stats, nil
}
