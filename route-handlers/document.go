package routehandlers

import (
	"errors"
	"net/http"

	"github.com/coreybb/libris/datastore"
	"github.com/coreybb/libris/library"
	"github.com/coreybb/libris/models"
	"github.com/coreybb/libris/webutil"
)

const msgDocumentNotFound = "Document not found"

// DocumentHandler serves the stored document exactly as persisted, even when
// its contents do not decode. A document that cannot be read at all is served
// as the empty default unless the service is strict.
type DocumentHandler struct {
	Library *library.Service
}

func NewDocumentHandler(svc *library.Service) *DocumentHandler {
	return &DocumentHandler{Library: svc}
}

func (h *DocumentHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) error {
	raw, err := h.Library.RawDocument(r.Context())
	if err != nil {
		if errors.Is(err, datastore.ErrDocumentNotFound) {
			return webutil.ErrNotFoundWrap(msgDocumentNotFound, err)
		}
		if !maskStorageFault(h.Library, r, err) {
			return webutil.ErrInternalServerWrap("failed to read stored document", err)
		}
		webutil.RespondWithJSON(w, http.StatusOK, models.EmptyDocument())
		return nil
	}

	etag := webutil.ETag(raw)
	w.Header().Set(webutil.HeaderETag, etag)
	if r.Header.Get(webutil.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
	return nil
}
