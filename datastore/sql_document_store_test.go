package datastore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/libris/datastore"
	"github.com/coreybb/libris/models"
)

const postgresDSNEnv = "LIBRIS_TEST_POSTGRES_DSN"

func openSQLiteStore(t *testing.T) *datastore.SQLDocumentStore {
	t.Helper()
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "libris.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store, err := datastore.NewSQLDocumentStore(context.Background(), db, datastore.DialectSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func openPostgresStore(t *testing.T, driver string) *datastore.SQLDocumentStore {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}
	db, err := sqlx.Open(driver, dsn)
	require.NoError(t, err)

	store, err := datastore.NewSQLDocumentStore(context.Background(), db, datastore.DialectPostgres)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM library_documents`)
		_ = store.Close()
	})
	_, err = db.Exec(`DELETE FROM library_documents`)
	require.NoError(t, err)
	return store
}

func exerciseSQLDocumentStore(t *testing.T, store *datastore.SQLDocumentStore) {
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, datastore.ErrDocumentNotFound)

	require.NoError(t, store.Save(ctx, sampleDocument()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), loaded)

	// A second save replaces the single row rather than adding one.
	next := sampleDocument()
	next.Books = append(next.Books, models.Book{ID: 2, Title: `It's "quoted" \ escaped`})
	require.NoError(t, store.Save(ctx, next))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, loaded)

	// The stored body matches what the file store writes.
	fileStore := datastore.NewJSONFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, fileStore.Save(ctx, next))
	fromFile, err := fileStore.Raw(ctx)
	require.NoError(t, err)
	fromSQL, err := store.Raw(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(fromFile), string(fromSQL))
}

func Test_SQLDocumentStore_SQLite(t *testing.T) {
	exerciseSQLDocumentStore(t, openSQLiteStore(t))
}

func Test_SQLDocumentStore_PostgresPQ(t *testing.T) {
	exerciseSQLDocumentStore(t, openPostgresStore(t, datastore.DriverPQ))
}

func Test_SQLDocumentStore_PostgresPGX(t *testing.T) {
	exerciseSQLDocumentStore(t, openPostgresStore(t, datastore.DriverPGX))
}

func Test_NewSQLDocumentStore_RejectsUnknownDialect(t *testing.T) {
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "libris.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = datastore.NewSQLDocumentStore(context.Background(), db, "mysql")
	assert.Error(t, err)
}
