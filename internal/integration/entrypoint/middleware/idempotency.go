package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/adapter"
)

const (
	// IdempotencyKeyHeader names the request header carrying the client's key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader is set on responses served from the store.
	IdempotencyReplayHeader = "Idempotent-Replayed"
)

// bodyRecorder captures the response body while it is written.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a mutating request repeats an
// Idempotency-Key. Keys are scoped to the owner. Requests without a key, and
// all requests when store is nil, pass through.
func Idempotency(store adapter.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		ownerID, _ := GetOwnerIDFromContext(c)
		scopedKey := ownerID + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		stored, err := store.Get(c.Request.Context(), scopedKey)
		if err != nil {
			slog.Warn("Idempotency lookup failed", "key", key, "error", err)
		}
		if stored != nil {
			slog.Debug("Idempotent request replayed", "ownerID", ownerID, "key", key)
			c.Header(IdempotencyReplayHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		response := adapter.StoredResponse{Status: status, Body: recorder.body.Bytes()}
		if err := store.Save(c.Request.Context(), scopedKey, response, ttl); err != nil {
			slog.Warn("Failed to store idempotent response", "key", key, "error", err)
		}
	}
}
