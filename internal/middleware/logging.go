package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/garage/internal/logging"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, stores a request-scoped log
// entry in the context and logs one line when the response is written.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			entry := logger.WithFields(log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			slot := &userSlot{}
			ctx := context.WithValue(logging.WithEntry(r.Context(), entry), userSlotKey{}, slot)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := log.Fields{
				"status":      status,
				"duration_ms": time.Since(start).Milliseconds(),
				"bytes":       ww.BytesWritten(),
			}
			if slot.username != "" {
				fields["user"] = slot.username
			}
			line := entry.WithFields(fields)
			switch {
			case status >= 500:
				line.Error("request failed")
			case status >= 400:
				line.Warn("request rejected")
			default:
				line.Info("request completed")
			}
		})
	}
}

type userSlotKey struct{}

// userSlot lets handlers further down report the authenticated user back to
// the request logger, which only sees its own context.
type userSlot struct {
	username string
}

func noteUser(ctx context.Context, username string) {
	if slot, ok := ctx.Value(userSlotKey{}).(*userSlot); ok {
		slot.username = username
	}
}
