package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// Config holds the connection parameters for the MySQL pool.
type Config struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
}

func (cfg Config) dsn() string {
	// parseTime is required so TIMESTAMP columns scan into time.Time.
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// InitDB opens the MySQL pool, verifies connectivity and applies the startup schema.
func InitDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Bounded pool: exhaustion blocks callers instead of failing them.
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := applySchema(db); err != nil {
		return nil, fmt.Errorf("applying database schema: %w", err)
	}

	return db, nil
}

// applySchema executes the startup DDL statement by statement.
func applySchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
