// Package apikey guards routes behind static API keys.
package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	dErrors "birl/pkg/domain-errors"
	"birl/pkg/platform/httputil"
	"birl/pkg/platform/middleware/request"
	strs "birl/pkg/platform/strings"
)

// HeaderAPIKey is accepted alongside "Authorization: Bearer <key>".
const HeaderAPIKey = "X-API-Key"

// Require rejects requests that do not present one of keys. With no keys
// configured every request passes.
func Require(keys []string, logger *slog.Logger) func(http.Handler) http.Handler {
	var accepted [][]byte
	for _, k := range strs.DedupeAndTrim(keys) {
		accepted = append(accepted, []byte(k))
	}

	return func(next http.Handler) http.Handler {
		if len(accepted) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := keyFromRequest(r)
			if presented == "" || !matches(accepted, []byte(presented)) {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid api key",
					"request_id", request.GetRequestID(ctx),
					"key_present", presented != "",
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "valid API key required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func keyFromRequest(r *http.Request) string {
	if key := r.Header.Get(HeaderAPIKey); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// matches compares against every key so timing does not reveal which one
// matched.
func matches(accepted [][]byte, presented []byte) bool {
	ok := 0
	for _, k := range accepted {
		ok |= subtle.ConstantTimeCompare(presented, k)
	}
	return ok == 1
}
