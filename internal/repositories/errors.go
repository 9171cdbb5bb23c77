package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrForeignKeyViolation is returned when a write violates a foreign key,
	// e.g. deleting a row that other rows still reference.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// MySQL error numbers the repositories care about.
const (
	mysqlErrRowIsReferenced  = 1451 // cannot delete, child rows reference this row
	mysqlErrNoReferencedRow  = 1452 // cannot insert/update, parent row missing
	mysqlErrNoReferencedRow2 = 1216
)

// isForeignKeyViolation reports whether err is a MySQL foreign key error.
func isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	switch mysqlErr.Number {
	case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow, mysqlErrNoReferencedRow2:
		return true
	}
	return false
}

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx.
// This allows repository methods to be used within transactions or with a direct
// DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}
