package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestMiddleware(t *testing.T) {
	enabled := Middleware(Config{Enabled: true, Token: "s3cret"})(okHandler)
	disabled := Middleware(Config{})(okHandler)

	tests := []struct {
		name    string
		handler http.Handler
		method  string
		auth    string
		want    int
	}{
		{"read is public", enabled, http.MethodGet, "", http.StatusNoContent},
		{"head is public", enabled, http.MethodHead, "", http.StatusNoContent},
		{"post without token", enabled, http.MethodPost, "", http.StatusUnauthorized},
		{"post with wrong token", enabled, http.MethodPost, "Bearer nope", http.StatusUnauthorized},
		{"post with bare token", enabled, http.MethodPost, "s3cret", http.StatusUnauthorized},
		{"post with empty bearer", enabled, http.MethodPost, "Bearer ", http.StatusUnauthorized},
		{"post with token", enabled, http.MethodPost, "Bearer s3cret", http.StatusNoContent},
		{"auth disabled", disabled, http.MethodPost, "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/api/v1/tle/refresh", nil)
			if tt.auth != "" {
				r.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
