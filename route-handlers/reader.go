package routehandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/coreybb/libris/library"
	"github.com/coreybb/libris/models"
	"github.com/coreybb/libris/webutil"
)

const (
	msgReaderAdded    = "Reader added successfully"
	msgReaderDeleted  = "Reader deleted successfully"
	msgReaderNotFound = "Reader not found"
)

// Holds dependencies for reader route handlers.
type ReaderHandler struct {
	Library *library.Service
}

func NewReaderHandler(svc *library.Service) *ReaderHandler {
	return &ReaderHandler{Library: svc}
}

func (h *ReaderHandler) HandleGetReaders(w http.ResponseWriter, r *http.Request) error {
	readers, err := h.Library.Readers(r.Context())
	if err != nil {
		if !maskStorageFault(h.Library, r, err) {
			return fmt.Errorf("failed to retrieve readers: %w", err)
		}
		readers = models.EmptyDocument().Readers
	}
	if readers == nil {
		readers = []models.Reader{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, readers)
	return nil
}

// An unreadable document holds no readers, so a masked fault answers 404.
func (h *ReaderHandler) HandleGetReader(w http.ResponseWriter, r *http.Request) error {
	readerID, ok := intURLParam(r, paramID)
	if !ok {
		return webutil.ErrNotFound(msgReaderNotFound)
	}

	reader, err := h.Library.Reader(r.Context(), readerID)
	if err != nil {
		if errors.Is(err, library.ErrReaderNotFound) || maskStorageFault(h.Library, r, err) {
			return webutil.ErrNotFoundWrap(msgReaderNotFound, err)
		}
		return fmt.Errorf("failed to retrieve reader %d: %w", readerID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, reader)
	return nil
}

func (h *ReaderHandler) HandleCreateReader(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		BooksIssued []int  `json:"booksIssued"`
	}
	if err := decodePayload(r, &req); err != nil {
		return err
	}

	err := h.Library.AddReader(r.Context(), library.NewReader{
		ID:          req.ID,
		Name:        req.Name,
		BooksIssued: req.BooksIssued,
	})
	if err != nil && !maskStorageFault(h.Library, r, err) {
		return fmt.Errorf("failed to add reader %d: %w", req.ID, err)
	}

	webutil.RespondWithMessage(w, http.StatusCreated, msgReaderAdded)
	return nil
}

// Responds with success whether or not a reader matched.
func (h *ReaderHandler) HandleDeleteReader(w http.ResponseWriter, r *http.Request) error {
	readerID, ok := intURLParam(r, paramID)
	if ok {
		if _, err := h.Library.DeleteReaders(r.Context(), readerID); err != nil {
			if !maskStorageFault(h.Library, r, err) {
				return fmt.Errorf("failed to delete reader %d: %w", readerID, err)
			}
		}
	}

	webutil.RespondWithMessage(w, http.StatusOK, msgReaderDeleted)
	return nil
}
