package apikey

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"birl/internal/platform/logger"
)

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		keys    []string
		headers map[string]string
		want    int
	}{
		{"disabled without keys", nil, nil, http.StatusNoContent},
		{"blank keys disable", []string{" "}, nil, http.StatusNoContent},
		{"missing key", []string{"k1"}, nil, http.StatusUnauthorized},
		{"wrong key", []string{"k1"}, map[string]string{HeaderAPIKey: "nope"}, http.StatusUnauthorized},
		{"header key", []string{"k1", "k2"}, map[string]string{HeaderAPIKey: "k2"}, http.StatusNoContent},
		{"bearer key", []string{"k1"}, map[string]string{"Authorization": "Bearer k1"}, http.StatusNoContent},
		{"basic auth rejected", []string{"k1"}, map[string]string{"Authorization": "Basic k1"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Require(tt.keys, logger.Discard())(ok)
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
