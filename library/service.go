package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coreybb/libris/datastore"
	"github.com/coreybb/libris/models"
)

var (
	// ErrReaderNotFound is returned by Service.Reader when no reader has the requested ID.
	ErrReaderNotFound = errors.New("reader not found")
	// ErrSaveFailed marks mutations whose change was applied in memory but not persisted.
	ErrSaveFailed = errors.New("document save failed")
)

// NewReader carries the client-supplied fields of a reader.
// A nil BooksIssued means the field was absent.
type NewReader struct {
	ID          int
	Name        string
	BooksIssued []int
}

// Service runs the per-request read-modify-write cycle over a DocumentStore.
// The document is loaded fresh for every call and never cached.
type Service struct {
	store     datastore.DocumentStore
	serialize bool
	strict    bool
	writeMu   sync.Mutex
}

type Option func(*Service)

// WithSerializedWrites makes mutations run one at a time, so concurrent
// writers no longer overwrite each other's changes.
func WithSerializedWrites() Option {
	return func(s *Service) {
		s.serialize = true
	}
}

// WithStrictStorage stops mutations from carrying on over an unreadable
// document. Callers should then report storage faults instead of masking them.
func WithStrictStorage() Option {
	return func(s *Service) {
		s.strict = true
	}
}

// NewService creates a Service. Without options mutations are unsynchronized
// and the last write wins.
func NewService(store datastore.DocumentStore, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strict reports whether storage faults should reach the client.
func (s *Service) Strict() bool {
	return s.strict
}

// Document loads the current document. A store that has never been written
// yields the empty document.
func (s *Service) Document(ctx context.Context) (*models.Document, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, datastore.ErrDocumentNotFound) {
			slog.Debug("No stored document, using empty default")
			return models.EmptyDocument(), nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// RawDocument returns the stored bytes as they are persisted.
func (s *Service) RawDocument(ctx context.Context) ([]byte, error) {
	return s.store.Raw(ctx)
}

func (s *Service) Books(ctx context.Context) ([]models.Book, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Books, nil
}

func (s *Service) Readers(ctx context.Context) ([]models.Reader, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Readers, nil
}

// Reader returns the first reader whose ID matches.
func (s *Service) Reader(ctx context.Context, id int) (*models.Reader, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Readers {
		if doc.Readers[i].ID == id {
			return &doc.Readers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrReaderNotFound, id)
}

// AddBook appends the book as given. Duplicate IDs are not rejected.
func (s *Service) AddBook(ctx context.Context, book models.Book) error {
	return s.mutate(ctx, "add book", func(doc *models.Document) {
		doc.Books = append(doc.Books, book)
	})
}

// AddReader appends a reader with HoursRead set to zero.
func (s *Service) AddReader(ctx context.Context, in NewReader) error {
	booksIssued := in.BooksIssued
	if booksIssued == nil {
		booksIssued = []int{}
	}
	reader := models.Reader{
		ID:          in.ID,
		Name:        in.Name,
		BooksIssued: booksIssued,
		HoursRead:   0,
	}
	return s.mutate(ctx, "add reader", func(doc *models.Document) {
		doc.Readers = append(doc.Readers, reader)
	})
}

// DeleteBooks removes every book with the given ID and reports how many were removed.
// Removing nothing is not an error.
func (s *Service) DeleteBooks(ctx context.Context, id int) (int, error) {
	removed := 0
	err := s.mutate(ctx, "delete books", func(doc *models.Document) {
		kept := doc.Books[:0]
		for _, b := range doc.Books {
			if b.ID == id {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		doc.Books = kept
	})
	return removed, err
}

// DeleteReaders removes every reader with the given ID and reports how many were removed.
func (s *Service) DeleteReaders(ctx context.Context, id int) (int, error) {
	removed := 0
	err := s.mutate(ctx, "delete readers", func(doc *models.Document) {
		kept := doc.Readers[:0]
		for _, r := range doc.Readers {
			if r.ID == id {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		doc.Readers = kept
	})
	return removed, err
}

// mutate loads the document, applies fn and saves the whole document back.
// Unless the service is strict, a document that cannot be read is replaced by
// the empty one, so the save overwrites whatever was stored.
func (s *Service) mutate(ctx context.Context, op string, fn func(doc *models.Document)) error {
	if s.serialize {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}

	doc, err := s.Document(ctx)
	if err != nil {
		if s.strict {
			return fmt.Errorf("%s: %w", op, err)
		}
		slog.Warn("Error reading document, continuing with empty default", "op", op, "error", err)
		doc = models.EmptyDocument()
	}

	fn(doc)

	if err := s.store.Save(ctx, doc); err != nil {
		slog.Error("Error saving document", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrSaveFailed, err)
	}
	slog.Info("Document saved", "op", op, "books", len(doc.Books), "readers", len(doc.Readers))
	return nil
}
