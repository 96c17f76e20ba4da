package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/coreybb/libris/route-handlers"
	"github.com/coreybb/libris/webutil"
)

const (
	booksBasePath   = "/books"
	readersBasePath = "/readers"
	healthPath      = "/healthz"
)

const (
	paramID = "id" // General parameter name for resource IDs

	requestTimeout = 60 * time.Second
)

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
}

func SetupRoutes(
	documentHandler *rh.DocumentHandler,
	bookHandler *rh.BookHandler,
	readerHandler *rh.ReaderHandler,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(RequestUUID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                                                 // Log every request
	r.Use(middleware.Recoverer)                                              // Recover from panics
	r.Use(middleware.Timeout(requestTimeout))                                // Set a timeout context for requests
	r.Use(CORS(opts.AllowedOrigins))                                         // Any origin by default
	r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8)) // Default Content-Type

	r.Get("/", webutil.MakeHandler(documentHandler.HandleGetDocument))
	configureBookRoutes(r, bookHandler)
	configureReaderRoutes(r, readerHandler)

	r.Get(healthPath, handleHealthCheck)

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Book Routes ---
func configureBookRoutes(r chi.Router, handler *rh.BookHandler) {
	specificBookPath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(booksBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetBooks))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateBook))
		r.Delete(specificBookPath, webutil.MakeHandler(handler.HandleDeleteBook))
	})
}

// --- Reader Routes ---
func configureReaderRoutes(r chi.Router, handler *rh.ReaderHandler) {
	specificReaderPath := pathWithParam("", paramID)

	r.Route(readersBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetReaders))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateReader))
		r.Get(specificReaderPath, webutil.MakeHandler(handler.HandleGetReader))
		r.Delete(specificReaderPath, webutil.MakeHandler(handler.HandleDeleteReader))
	})
}

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
