package services

import (
	"errors"
	"testing"

	"pos_backend/internal/models"
)

func TestCreateCompany(t *testing.T) {
	db, _ := newTxDB(t)
	companyRepo := newFakeCompanyRepo()
	svc := NewCompanyService(companyRepo, newFakeItemRepo(), db)

	company, err := svc.CreateCompany(CompanyRequest{Name: "Aqua Ltd", Email: "office@aqua.example"})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if company.ID == 0 || company.Name != "Aqua Ltd" {
		t.Errorf("unexpected company: %+v", company)
	}
	if company.Email == nil || *company.Email != "office@aqua.example" {
		t.Errorf("email not stored: %+v", company.Email)
	}

	if _, err := svc.CreateCompany(CompanyRequest{Name: "   "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: err = %v, want ErrValidation", err)
	}
}

func TestDeleteCompanyGuardedByItems(t *testing.T) {
	db, _ := newTxDB(t)
	companyRepo := newFakeCompanyRepo(
		&models.Company{ID: 1, Name: "Has items"},
		&models.Company{ID: 2, Name: "Empty"},
	)
	itemRepo := newFakeItemRepo(testItem(10, 1, 5))
	svc := NewCompanyService(companyRepo, itemRepo, db)

	if err := svc.DeleteCompany(1); !errors.Is(err, ErrConflict) {
		t.Errorf("company with items: err = %v, want ErrConflict", err)
	}
	if _, ok := companyRepo.companies[1]; !ok {
		t.Error("company with items must not be deleted")
	}

	if err := svc.DeleteCompany(2); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	if err := svc.DeleteCompany(404); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("unknown company: err = %v, want ErrCompanyNotFound", err)
	}
}

func TestGetCompanyDetailIncludesItems(t *testing.T) {
	db, _ := newTxDB(t)
	companyRepo := newFakeCompanyRepo(&models.Company{ID: 1, Name: "Aqua Ltd"})
	itemRepo := newFakeItemRepo(testItem(10, 1, 5), testItem(11, 1, 0), testItem(12, 2, 3))
	svc := NewCompanyService(companyRepo, itemRepo, db)

	detail, err := svc.GetCompanyDetail(1)
	if err != nil {
		t.Fatalf("GetCompanyDetail: %v", err)
	}
	if len(detail.Items) != 2 || detail.ItemCount != 2 {
		t.Errorf("items = %d, item_count = %d, want 2 each", len(detail.Items), detail.ItemCount)
	}

	if _, err := svc.GetCompanyDetail(404); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("unknown company: err = %v, want ErrCompanyNotFound", err)
	}
}

func TestExportCompany(t *testing.T) {
	db, _ := newTxDB(t)
	companyRepo := newFakeCompanyRepo(&models.Company{ID: 1, Name: "Aqua Ltd"})
	inStock := testItem(10, 1, 50)
	lowStock := testItem(11, 1, 3)
	outOfStock := testItem(12, 1, 0)
	itemRepo := newFakeItemRepo(inStock, lowStock, outOfStock)
	svc := NewCompanyService(companyRepo, itemRepo, db)

	export, err := svc.ExportCompany(1)
	if err != nil {
		t.Fatalf("ExportCompany: %v", err)
	}
	if export.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", export.TotalItems)
	}
	if want := (50 + 3 + 0) * 0.25; export.TotalValue != want {
		t.Errorf("total value = %v, want %v", export.TotalValue, want)
	}

	statuses := make(map[int64]string)
	for _, item := range export.Items {
		statuses[item.ID] = item.StockStatus
	}
	if statuses[10] != "In Stock" || statuses[11] != "Low Stock" || statuses[12] != "Out of Stock" {
		t.Errorf("unexpected statuses: %v", statuses)
	}
	if export.ExportDate.IsZero() {
		t.Error("export date must be set")
	}
}

func TestUpdateCompany(t *testing.T) {
	db, _ := newTxDB(t)
	companyRepo := newFakeCompanyRepo(&models.Company{ID: 1, Name: "Aqua Ltd"})
	svc := NewCompanyService(companyRepo, newFakeItemRepo(), db)

	company, err := svc.UpdateCompany(1, CompanyRequest{Name: "Aqua Group", Phone: "+111"})
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if company.Name != "Aqua Group" || company.Phone == nil || *company.Phone != "+111" {
		t.Errorf("unexpected company: %+v", company)
	}

	if _, err := svc.UpdateCompany(404, CompanyRequest{Name: "X"}); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("unknown company: err = %v, want ErrCompanyNotFound", err)
	}
}
