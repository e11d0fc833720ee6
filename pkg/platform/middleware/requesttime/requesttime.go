// Package requesttime stamps each request with its arrival time so the
// access log measures from the edge rather than from its own position in the
// middleware chain.
package requesttime

import (
	"net/http"
	"time"

	"birl/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), time.Now())))
	})
}
