package security

import (
	"net/http"

	"github.com/wecare-vn/invoice-api/internal/common"
)

// BodyLimit caps request payload sizes. Preview payloads carry at most a few
// thousand line records, so anything past the cap is junk.
type BodyLimit struct {
	Max int64
}

// Middleware rejects oversized requests with HTTP 413 and wraps the body so
// handlers reading past the cap fail instead of buffering unbounded input.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds limit", nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
