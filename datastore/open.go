package datastore

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // registers the "postgres" driver
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	DriverPQ  = "postgres"
	DriverPGX = "pgx"

	defaultSQLitePath = "data/libris.db"
	dbPingTimeout     = 5 * time.Second
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 25
	dbConnMaxLifetime = 5 * time.Minute
)

// Config selects and configures a DocumentStore backend.
type Config struct {
	Backend        string
	DataFile       string
	SQLitePath     string
	DatabaseURL    string
	PostgresDriver string
}

// Open returns the DocumentStore named by cfg.Backend. An empty backend means BackendFile.
func Open(ctx context.Context, cfg Config) (DocumentStore, error) {
	switch cfg.Backend {
	case "", BackendFile:
		store := NewJSONFileStore(cfg.DataFile)
		log.Printf("Using JSON file store at %s", store.Path())
		return store, nil
	case BackendMemory:
		log.Println("WARNING: Using in-memory store, data is lost on restart.")
		return NewMemoryStore(), nil
	case BackendSQLite:
		store, err := openSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendPostgres:
		store, err := openPostgres(ctx, cfg.PostgresDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func openSQLite(ctx context.Context, path string) (*SQLDocumentStore, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory '%s': %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	store, err := NewSQLDocumentStore(ctx, db, DialectSQLite)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("Using SQLite store at %s", path)
	return store, nil
}

func openPostgres(ctx context.Context, driver, connStr string) (*SQLDocumentStore, error) {
	if driver == "" {
		driver = DriverPQ
	}
	if driver != DriverPQ && driver != DriverPGX {
		return nil, fmt.Errorf("unknown postgres driver %q", driver)
	}

	db, err := sqlx.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store, err := NewSQLDocumentStore(ctx, db, DialectPostgres)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("Database connection successful (driver %s)", driver)
	return store, nil
}
