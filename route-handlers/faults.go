package routehandlers

import (
	"log/slog"
	"net/http"

	"github.com/coreybb/libris/library"
)

// maskStorageFault logs a storage fault and reports whether the handler should
// answer as though it had not happened. Strict services never mask.
func maskStorageFault(svc *library.Service, r *http.Request, err error) bool {
	if svc.Strict() {
		return false
	}
	slog.Warn("Storage fault masked",
		"path", r.URL.Path,
		"method", r.Method,
		"error", err,
	)
	return true
}
