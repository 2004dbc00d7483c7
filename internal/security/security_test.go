package security

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeadersMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	Headers{}.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestBodyLimitRejectsDeclaredOversize(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/preview", strings.NewReader(strings.Repeat("x", 32)))
	rec := httptest.NewRecorder()
	BodyLimit{Max: 16}.Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, rec.Body.String(), "BODY_TOO_LARGE")
}

func TestBodyLimitCapsStreamedBody(t *testing.T) {
	var readErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	body := io.NopCloser(strings.NewReader(strings.Repeat("x", 64)))
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/preview", body)
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	BodyLimit{Max: 16}.Middleware(next).ServeHTTP(rec, req)

	require.Error(t, readErr)
}

func TestBodyLimitPassesSmallBody(t *testing.T) {
	var got []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/preview", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	BodyLimit{Max: 16}.Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "{}", string(got))
}
