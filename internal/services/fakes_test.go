package services

import (
	"database/sql"
	"errors"
	"testing"

	"pos_backend/internal/models"
	"pos_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

// newTxDB returns a mocked *sql.DB that only arbitrates the transaction
// lifecycle. The repositories used in tests are fakes, so no statements run
// against the mock; expectations cover Begin, Commit and Rollback only.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// expectCommit covers the happy path. The deferred Rollback after a
// successful Commit never reaches the driver, so no expectation is needed
// for it.
func expectCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

type fakeProductRepo struct {
	products map[int64]*models.Product

	lockCalls      []int64
	decrements     map[int64]int
	failDecrement  bool
	failGetProduct error
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products:   make(map[int64]*models.Product),
		decrements: make(map[int64]int),
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) GetProducts() ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductByID(id int64) (*models.Product, error) {
	if f.failGetProduct != nil {
		return nil, f.failGetProduct
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) GetProductForUpdate(_ repositories.SQLExecutor, id int64) (*models.Product, error) {
	f.lockCalls = append(f.lockCalls, id)
	return f.GetProductByID(id)
}

func (f *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	id := int64(len(f.products) + 1)
	product.ID = id
	copied := *product
	f.products[id] = &copied
	return id, nil
}

func (f *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) UpdateStocks(_ repositories.SQLExecutor, id int64, stocks int) error {
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stocks = stocks
	return nil
}

func (f *fakeProductRepo) DecrementStocks(_ repositories.SQLExecutor, id int64, quantity int) error {
	if f.failDecrement {
		return errors.New("decrement failed")
	}
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stocks -= quantity
	f.decrements[id] += quantity
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) CountProducts() (int, error) {
	return len(f.products), nil
}

func (f *fakeProductRepo) GetLowStockProducts(threshold int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.Stocks < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales     map[int64]*models.Sale
	saleItems map[int64][]models.SaleItem
	nextID    int64

	failCreateSale     bool
	failCreateSaleItem bool
	saleItemCounts     map[int64]int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:          make(map[int64]*models.Sale),
		saleItems:      make(map[int64][]models.SaleItem),
		saleItemCounts: make(map[int64]int),
		nextID:         100,
	}
}

func (f *fakeSaleRepo) CreateSale(_ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	if f.failCreateSale {
		return 0, errors.New("insert failed")
	}
	f.nextID++
	sale.ID = f.nextID
	copied := *sale
	f.sales[sale.ID] = &copied
	return sale.ID, nil
}

func (f *fakeSaleRepo) CreateSaleItem(_ repositories.SQLExecutor, item *models.SaleItem) (int64, error) {
	if f.failCreateSaleItem {
		return 0, errors.New("insert failed")
	}
	f.nextID++
	item.ID = f.nextID
	f.saleItems[item.SaleID] = append(f.saleItems[item.SaleID], *item)
	return item.ID, nil
}

func (f *fakeSaleRepo) GetSaleByID(id int64) (*models.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *sale
	return &copied, nil
}

func (f *fakeSaleRepo) GetSaleItemsBySaleID(saleID int64) ([]models.SaleItem, error) {
	return f.saleItems[saleID], nil
}

func (f *fakeSaleRepo) GetSaleItemsWithProductNames(saleID int64) ([]models.SaleItem, error) {
	return f.saleItems[saleID], nil
}

func (f *fakeSaleRepo) GetSalesHistory() ([]models.Sale, error) {
	out := make([]models.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSaleRepo) GetSalesToday() ([]models.Sale, error) {
	return f.GetSalesHistory()
}

func (f *fakeSaleRepo) GetRecentSales(limit int) ([]models.Sale, error) {
	sales, _ := f.GetSalesHistory()
	if len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (f *fakeSaleRepo) UpdateSaleStatus(_ repositories.SQLExecutor, id int64, status string) error {
	sale, ok := f.sales[id]
	if !ok {
		return repositories.ErrNotFound
	}
	sale.Status = status
	return nil
}

func (f *fakeSaleRepo) CountSaleItemsByProduct(productID int64) (int, error) {
	return f.saleItemCounts[productID], nil
}

func (f *fakeSaleRepo) GetSalesTotal() (float64, error) {
	var total float64
	for _, s := range f.sales {
		total += s.TotalAmount
	}
	return total, nil
}

func (f *fakeSaleRepo) GetSalesTotalToday() (float64, error) {
	return f.GetSalesTotal()
}

type fakeItemRepo struct {
	items   map[int64]*models.InventoryItem
	history map[int64][]models.StockHistory
	nextID  int64

	lockCalls   []int64
	failHistory bool
}

func newFakeItemRepo(items ...*models.InventoryItem) *fakeItemRepo {
	repo := &fakeItemRepo{
		items:   make(map[int64]*models.InventoryItem),
		history: make(map[int64][]models.StockHistory),
		nextID:  10,
	}
	for _, item := range items {
		repo.items[item.ID] = item
		if item.ID > repo.nextID {
			repo.nextID = item.ID
		}
	}
	return repo
}

func (f *fakeItemRepo) GetItemsByCompany(companyID int64, _, _ string) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range f.items {
		if item.CompanyID == companyID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) GetItemByID(id int64) (*models.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) GetItemForUpdate(_ repositories.SQLExecutor, id int64) (*models.InventoryItem, error) {
	f.lockCalls = append(f.lockCalls, id)
	return f.GetItemByID(id)
}

func (f *fakeItemRepo) CreateItem(_ repositories.SQLExecutor, item *models.InventoryItem) (int64, error) {
	f.nextID++
	item.ID = f.nextID
	copied := *item
	f.items[item.ID] = &copied
	return item.ID, nil
}

func (f *fakeItemRepo) UpdateItem(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemRepo) UpdateQuantity(_ repositories.SQLExecutor, id int64, quantity float64) error {
	item, ok := f.items[id]
	if !ok {
		return repositories.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeItemRepo) DeleteItem(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) CountItemsByCompany(companyID int64) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeItemRepo) CreateStockHistory(_ repositories.SQLExecutor, entry *models.StockHistory) (int64, error) {
	if f.failHistory {
		return 0, errors.New("insert failed")
	}
	f.nextID++
	entry.ID = f.nextID
	f.history[entry.ItemID] = append(f.history[entry.ItemID], *entry)
	return entry.ID, nil
}

func (f *fakeItemRepo) GetStockHistory(itemID int64) ([]models.StockHistory, error) {
	return f.history[itemID], nil
}

func (f *fakeItemRepo) GetCompanyStats(companyID int64) (*models.CompanyStats, error) {
	count, _ := f.CountItemsByCompany(companyID)
	return &models.CompanyStats{ItemCount: count}, nil
}

func (f *fakeItemRepo) GetGlobalStats() (*models.InventoryStats, error) {
	return &models.InventoryStats{TotalItems: len(f.items)}, nil
}

type fakeCompanyRepo struct {
	companies map[int64]*models.Company
	nextID    int64
}

func newFakeCompanyRepo(companies ...*models.Company) *fakeCompanyRepo {
	repo := &fakeCompanyRepo{
		companies: make(map[int64]*models.Company),
		nextID:    1,
	}
	for _, c := range companies {
		repo.companies[c.ID] = c
		if c.ID > repo.nextID {
			repo.nextID = c.ID
		}
	}
	return repo
}

func (f *fakeCompanyRepo) GetCompanies(_ string) ([]models.Company, error) {
	out := make([]models.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) GetCompanyByID(id int64) (*models.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCompanyRepo) CreateCompany(_ repositories.SQLExecutor, company *models.Company) (int64, error) {
	f.nextID++
	company.ID = f.nextID
	copied := *company
	f.companies[company.ID] = &copied
	return company.ID, nil
}

func (f *fakeCompanyRepo) UpdateCompany(_ repositories.SQLExecutor, company *models.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *company
	f.companies[company.ID] = &copied
	return nil
}

func (f *fakeCompanyRepo) DeleteCompany(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.companies[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyRepo) CountCompanies() (int, error) {
	return len(f.companies), nil
}
