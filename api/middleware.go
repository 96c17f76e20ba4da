package api

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/coreybb/libris/webutil"
)

// RequestUUID makes sure every request carries an X-Request-Id. Client-supplied
// IDs are kept; otherwise a random UUID is assigned. It runs before
// middleware.RequestID, which then adopts the header value. The ID is echoed
// back in the response.
func RequestUUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(webutil.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(webutil.HeaderRequestID, requestID)
		}
		w.Header().Set(webutil.HeaderRequestID, requestID)
		next.ServeHTTP(w, r)
	})
}

// CORS permits cross-origin requests from the given origins; "*" allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", webutil.HeaderRequestID, webutil.HeaderIfNoneMatch},
		ExposedHeaders: []string{webutil.HeaderRequestID, webutil.HeaderETag},
		MaxAge:         300,
	})
}

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}
