package datastore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/coreybb/libris/models"
)

// defaultDataFile is used when no path is configured.
const defaultDataFile = "data/data.json"

// JSONFileStore keeps the document in a single JSON file on the local file system.
// Every Save rewrites the whole file.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a JSONFileStore. If path is empty, it defaults to defaultDataFile.
func NewJSONFileStore(path string) *JSONFileStore {
	if path == "" {
		path = defaultDataFile
	}
	return &JSONFileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Raw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read data file '%s': %w", s.path, err)
	}
	return data, nil
}

func (s *JSONFileStore) Load(ctx context.Context) (*models.Document, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("data file '%s': %w", s.path, err)
	}
	return doc, nil
}

func (s *JSONFileStore) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create data directory '%s': %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write data file '%s': %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *JSONFileStore) Close() error {
	return nil
}
