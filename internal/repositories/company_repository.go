package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
)

// CompanyRepository defines the interface for company-related database operations.
type CompanyRepository interface {
	GetCompanies(search string) ([]models.Company, error)
	GetCompanyByID(id int64) (*models.Company, error)
	CreateCompany(executor SQLExecutor, company *models.Company) (int64, error)
	UpdateCompany(executor SQLExecutor, company *models.Company) error
	DeleteCompany(executor SQLExecutor, id int64) error
	CountCompanies() (int, error)
}

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository.
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// GetCompanies lists companies with item_count and stock_status computed from
// the owned items. Warning (anything at or below threshold but above zero)
// takes precedence over Critical, matching the frontend's expectations.
func (r *companyRepository) GetCompanies(search string) ([]models.Company, error) {
	query := `SELECT c.id, c.name, c.email, c.phone, c.address, c.notes, c.created_at, c.updated_at,
	            COUNT(i.id) AS item_count,
	            CASE
	              WHEN COUNT(i.id) = 0 THEN 'Good'
	              WHEN SUM(CASE WHEN i.quantity <= i.low_stock_threshold AND i.quantity > 0 THEN 1 ELSE 0 END) > 0 THEN 'Warning'
	              WHEN SUM(CASE WHEN i.quantity = 0 THEN 1 ELSE 0 END) > 0 THEN 'Critical'
	              ELSE 'Good'
	            END AS stock_status
	          FROM companies c
	          LEFT JOIN inventory_items i ON c.id = i.company_id`

	var args []interface{}
	if search != "" {
		query += ` WHERE c.name LIKE ? OR c.email LIKE ? OR c.address LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` GROUP BY c.id ORDER BY c.name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting companies: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt, &c.ItemCount, &c.StockStatus); err != nil {
			return nil, fmt.Errorf("%w: scanning company: %v", ErrDatabaseError, err)
		}
		companies = append(companies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating companies: %v", ErrDatabaseError, err)
	}
	return companies, nil
}

func (r *companyRepository) GetCompanyByID(id int64) (*models.Company, error) {
	company := &models.Company{}
	query := `SELECT id, name, email, phone, address, notes, created_at, updated_at
	          FROM companies WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(&company.ID, &company.Name, &company.Email,
		&company.Phone, &company.Address, &company.Notes, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting company by ID %d: %v", ErrDatabaseError, id, err)
	}
	return company, nil
}

func (r *companyRepository) CreateCompany(executor SQLExecutor, company *models.Company) (int64, error) {
	query := `INSERT INTO companies (name, email, phone, address, notes)
	          VALUES (?, ?, ?, ?, ?)`
	result, err := executor.Exec(query, company.Name, company.Email, company.Phone, company.Address, company.Notes)
	if err != nil {
		return 0, fmt.Errorf("%w: creating company: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading company insert id: %v", ErrDatabaseError, err)
	}
	company.ID = id
	return id, nil
}

func (r *companyRepository) UpdateCompany(executor SQLExecutor, company *models.Company) error {
	query := `UPDATE companies SET name = ?, email = ?, phone = ?, address = ?, notes = ?
	          WHERE id = ?`
	result, err := executor.Exec(query, company.Name, company.Email, company.Phone,
		company.Address, company.Notes, company.ID)
	if err != nil {
		return fmt.Errorf("%w: updating company ID %d: %v", ErrDatabaseError, company.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetCompanyByID(company.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *companyRepository) DeleteCompany(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting company ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *companyRepository) CountCompanies() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM companies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting companies: %v", ErrDatabaseError, err)
	}
	return count, nil
}
