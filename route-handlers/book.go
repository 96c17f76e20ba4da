package routehandlers

import (
	"fmt"
	"net/http"

	"github.com/coreybb/libris/library"
	"github.com/coreybb/libris/models"
	"github.com/coreybb/libris/webutil"
)

const (
	msgBookAdded   = "Book added successfully"
	msgBookDeleted = "Book deleted successfully"
)

// Holds dependencies for book route handlers.
type BookHandler struct {
	Library *library.Service
}

func NewBookHandler(svc *library.Service) *BookHandler {
	return &BookHandler{Library: svc}
}

// An unreadable document is served as an empty list.
func (h *BookHandler) HandleGetBooks(w http.ResponseWriter, r *http.Request) error {
	books, err := h.Library.Books(r.Context())
	if err != nil {
		if !maskStorageFault(h.Library, r, err) {
			return fmt.Errorf("failed to retrieve books: %w", err)
		}
		books = models.EmptyDocument().Books
	}
	if books == nil {
		books = []models.Book{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, books)
	return nil
}

// Missing fields are stored as zero values.
func (h *BookHandler) HandleCreateBook(w http.ResponseWriter, r *http.Request) error {
	var req models.Book
	if err := decodePayload(r, &req); err != nil {
		return err
	}

	if err := h.Library.AddBook(r.Context(), req); err != nil {
		if !maskStorageFault(h.Library, r, err) {
			return fmt.Errorf("failed to add book %d: %w", req.ID, err)
		}
	}

	webutil.RespondWithMessage(w, http.StatusCreated, msgBookAdded)
	return nil
}

// Responds with success whether or not a book matched.
func (h *BookHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) error {
	bookID, ok := intURLParam(r, paramID)
	if ok {
		if _, err := h.Library.DeleteBooks(r.Context(), bookID); err != nil {
			if !maskStorageFault(h.Library, r, err) {
				return fmt.Errorf("failed to delete book %d: %w", bookID, err)
			}
		}
	}

	webutil.RespondWithMessage(w, http.StatusOK, msgBookDeleted)
	return nil
}
