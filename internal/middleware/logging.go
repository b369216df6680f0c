package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"whatsapp-agent/internal/infra/logger"
)

// LoggingMiddleware logs every request with a correlation ID so a webhook
// delivery can be traced through the pipeline. The ID is taken from the
// X-Correlation-Id header when the caller supplies one.
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get("X-Correlation-Id")
			if correlationID == "" {
				correlationID = uuid.NewString()
			}
			w.Header().Set("X-Correlation-Id", correlationID)

			wrappedWriter := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(wrappedWriter, r)

			log.Info(fmt.Sprintf("Request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr), logrus.Fields{
				"correlation_id": correlationID,
				"status":         wrappedWriter.statusCode,
				"duration_ms":    time.Since(start).Milliseconds(),
			})
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
