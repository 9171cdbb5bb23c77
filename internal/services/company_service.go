package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pos_backend/internal/models"
	"pos_backend/internal/repositories"
	"pos_backend/pkg/utils"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanyRequest carries the writable fields of a company.
type CompanyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CompanyDetail is a company together with its items.
type CompanyDetail struct {
	models.Company
	Items []models.InventoryItem `json:"items"`
}

type CompanyService interface {
	GetCompanies(search string) ([]models.Company, error)
	GetCompanyDetail(companyID int64) (*CompanyDetail, error)
	CreateCompany(req CompanyRequest) (*models.Company, error)
	UpdateCompany(companyID int64, req CompanyRequest) (*models.Company, error)
	DeleteCompany(companyID int64) error
	GetCompanyStats(companyID int64) (*models.CompanyStats, error)
	ExportCompany(companyID int64) (*models.CompanyExport, error)
}

type companyService struct {
	companyRepo repositories.CompanyRepository
	itemRepo    repositories.ItemRepository
	db          *sql.DB
}

// NewCompanyService creates a new instance of CompanyService.
func NewCompanyService(cr repositories.CompanyRepository, ir repositories.ItemRepository, db *sql.DB) CompanyService {
	return &companyService{
		companyRepo: cr,
		itemRepo:    ir,
		db:          db,
	}
}

func (s *companyService) GetCompanies(search string) ([]models.Company, error) {
	companies, err := s.companyRepo.GetCompanies(search)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) GetCompanyDetail(companyID int64) (*CompanyDetail, error) {
	company, err := s.getCompany(companyID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.GetItemsByCompany(companyID, repositories.ItemFilterAll, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get items for company %d: %w", companyID, err)
	}
	company.ItemCount = len(items)
	return &CompanyDetail{Company: *company, Items: items}, nil
}

func (s *companyService) CreateCompany(req CompanyRequest) (*models.Company, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: company name is required", ErrValidation)
	}
	company := req.toModel()
	id, err := s.companyRepo.CreateCompany(s.db, company)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return s.companyRepo.GetCompanyByID(id)
}

func (s *companyService) UpdateCompany(companyID int64, req CompanyRequest) (*models.Company, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if _, err := s.getCompany(companyID); err != nil {
		return nil, err
	}
	company := req.toModel()
	company.ID = companyID
	if err := s.companyRepo.UpdateCompany(s.db, company); err != nil {
		return nil, fmt.Errorf("failed to update company %d: %w", companyID, err)
	}
	return s.companyRepo.GetCompanyByID(companyID)
}

// DeleteCompany refuses to delete a company that still owns items. The
// cascade on the items table would otherwise silently destroy stock history.
func (s *companyService) DeleteCompany(companyID int64) error {
	if _, err := s.getCompany(companyID); err != nil {
		return err
	}
	count, err := s.itemRepo.CountItemsByCompany(companyID)
	if err != nil {
		return fmt.Errorf("failed to count items for company %d: %w", companyID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete company with existing inventory items", ErrConflict)
	}
	if err := s.companyRepo.DeleteCompany(s.db, companyID); err != nil {
		return fmt.Errorf("failed to delete company %d: %w", companyID, err)
	}
	return nil
}

func (s *companyService) GetCompanyStats(companyID int64) (*models.CompanyStats, error) {
	if _, err := s.getCompany(companyID); err != nil {
		return nil, err
	}
	stats, err := s.itemRepo.GetCompanyStats(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for company %d: %w", companyID, err)
	}
	return stats, nil
}

func (s *companyService) ExportCompany(companyID int64) (*models.CompanyExport, error) {
	company, err := s.getCompany(companyID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.GetItemsByCompany(companyID, repositories.ItemFilterAll, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get items for company %d: %w", companyID, err)
	}

	export := models.CompanyExport{
		Company:    *company,
		ExportDate: time.Now(),
		TotalItems: len(items),
		Items:      make([]models.ExportItem, 0, len(items)),
	}
	for _, item := range items {
		value := item.Quantity * item.UnitPrice
		export.TotalValue += value
		export.Items = append(export.Items, models.ExportItem{
			InventoryItem: item,
			TotalValue:    value,
			StockStatus:   stockStatus(item),
		})
	}
	export.Company.ItemCount = len(items)
	return &export, nil
}

func (s *companyService) getCompany(companyID int64) (*models.Company, error) {
	company, err := s.companyRepo.GetCompanyByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company %d: %w", companyID, err)
	}
	return company, nil
}

func (r CompanyRequest) toModel() *models.Company {
	return &models.Company{
		Name:    r.Name,
		Email:   utils.NewNullString(r.Email),
		Phone:   utils.NewNullString(r.Phone),
		Address: utils.NewNullString(r.Address),
		Notes:   utils.NewNullString(r.Notes),
	}
}

func stockStatus(item models.InventoryItem) string {
	switch {
	case item.Quantity <= 0:
		return "Out of Stock"
	case item.Quantity <= item.LowStockThreshold:
		return "Low Stock"
	default:
		return "In Stock"
	}
}
