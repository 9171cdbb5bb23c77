package repositories

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"pos_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func productRows(products ...models.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "service_type", "container_type", "price", "stocks", "created_at", "updated_at"})
	for _, p := range products {
		rows.AddRow(p.ID, p.Name, p.ServiceType, p.ContainerType, p.Price, p.Stocks, time.Now(), time.Now())
	}
	return rows
}

func TestGetProductByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(404)).
		WillReturnRows(productRows())

	if _, err := repo.GetProductByID(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetProductForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ? FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(productRows(models.Product{ID: 1, Name: "Water 19L", Price: 5.5, Stocks: 10}))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	product, err := repo.GetProductForUpdate(tx, 1)
	if err != nil {
		t.Fatalf("GetProductForUpdate: %v", err)
	}
	if product.Stocks != 10 {
		t.Errorf("stocks = %d, want 10", product.Stocks)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateProductReturnsInsertID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs("Water 19L", nil, nil, 5.5, 100).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.CreateProduct(db, &models.Product{Name: "Water 19L", Price: 5.5, Stocks: 100})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
}

func TestUpdateStocksDistinguishesMissingFromUnchanged(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	// Unchanged: zero rows affected but the product exists.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stocks = ? WHERE id = ?`)).
		WithArgs(5, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(1)).
		WillReturnRows(productRows(models.Product{ID: 1, Name: "Water 19L", Stocks: 5}))

	if err := repo.UpdateStocks(db, 1, 5); err != nil {
		t.Errorf("unchanged update: %v", err)
	}

	// Missing: zero rows affected and no such product.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stocks = ? WHERE id = ?`)).
		WithArgs(5, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(404)).
		WillReturnRows(productRows())

	if err := repo.UpdateStocks(db, 404, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing update: err = %v, want ErrNotFound", err)
	}
}

func TestDecrementStocksMissingProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stocks = stocks - ? WHERE id = ?`)).
		WithArgs(3, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DecrementStocks(db, 404, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteProductTranslatesForeignKeyError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = ?`)).
		WithArgs(int64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "a foreign key constraint fails"})

	if err := repo.DeleteProduct(db, 1); !errors.Is(err, ErrForeignKeyViolation) {
		t.Errorf("err = %v, want ErrForeignKeyViolation", err)
	}
}

func TestGetLowStockProducts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE stocks < ?`)).
		WithArgs(10).
		WillReturnRows(productRows(
			models.Product{ID: 2, Name: "Dispenser", Stocks: 1},
			models.Product{ID: 1, Name: "Water 19L", Stocks: 4},
		))

	products, err := repo.GetLowStockProducts(10)
	if err != nil {
		t.Fatalf("GetLowStockProducts: %v", err)
	}
	if len(products) != 2 || products[0].ID != 2 {
		t.Errorf("unexpected products: %+v", products)
	}
}
