package datastore

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/coreybb/libris/models"
)

var (
	// ErrDocumentNotFound is returned when nothing has been persisted yet.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrCorruptDocument is returned when the persisted bytes do not decode into a document.
	ErrCorruptDocument = errors.New("corrupt document")
)

// DocumentStore persists the library document as a single unit.
type DocumentStore interface {
	// Load returns the decoded document.
	Load(ctx context.Context) (*models.Document, error)
	// Save replaces the persisted document.
	Save(ctx context.Context, doc *models.Document) error
	// Raw returns the persisted bytes unchanged.
	Raw(ctx context.Context) ([]byte, error)
	Close() error
}

// json writes characters such as <, > and & unescaped, matching what other
// tools that maintain the data file produce.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// encodeDocument renders the document the way it is kept on disk: two-space indented JSON.
func encodeDocument(doc *models.Document) ([]byte, error) {
	if doc == nil {
		doc = models.EmptyDocument()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func decodeDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	doc.Normalize()
	return &doc, nil
}
