package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is echoed on every response so clients can correlate
// their traces with the server's access log and error envelopes.
const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags each request with an id, keeping one the
// client already supplied. The id travels in the request context and is
// picked up by the access log and the error response meta.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}
