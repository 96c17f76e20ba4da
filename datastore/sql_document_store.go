package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jmoiron/sqlx"

	"github.com/coreybb/libris/models"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"

	documentTable = "library_documents"
	colID         = "id"
	colBody       = "body"

	// The document always lives in a single row.
	documentRowID = 1
)

const createDocumentTableQuery = `
	CREATE TABLE IF NOT EXISTS library_documents (
		id   INTEGER PRIMARY KEY,
		body TEXT NOT NULL
	)
`

// SQLDocumentStore keeps the encoded document in one row of a SQL table.
// The stored body is byte-for-byte what JSONFileStore would write to disk.
type SQLDocumentStore struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewSQLDocumentStore wraps an open connection and creates the document table if needed.
// dialect is DialectPostgres or DialectSQLite.
func NewSQLDocumentStore(ctx context.Context, db *sqlx.DB, dialect string) (*SQLDocumentStore, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect)
	}
	if _, err := db.ExecContext(ctx, createDocumentTableQuery); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", documentTable, err)
	}
	return &SQLDocumentStore{db: db, dialect: goqu.Dialect(dialect)}, nil
}

func (s *SQLDocumentStore) Raw(ctx context.Context) ([]byte, error) {
	query, args, err := s.dialect.
		From(documentTable).
		Select(colBody).
		Where(goqu.C(colID).Eq(documentRowID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var body string
	if err := s.db.GetContext(ctx, &body, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return []byte(body), nil
}

func (s *SQLDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

// Save replaces the document row inside a transaction.
func (s *SQLDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	deleteQuery, deleteArgs, err := s.dialect.
		Delete(documentTable).
		Where(goqu.C(colID).Eq(documentRowID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	insertQuery, insertArgs, err := s.dialect.
		Insert(documentTable).
		Rows(goqu.Record{colID: documentRowID, colBody: string(data)}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("failed to delete previous document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}
	return nil
}

func (s *SQLDocumentStore) Close() error {
	return s.db.Close()
}
