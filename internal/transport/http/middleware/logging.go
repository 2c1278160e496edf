package middleware

import (
	"net/http"
	"time"

	"journal-service/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Logging writes an access log line and records request duration.
// Panics are logged and answered with 500.
func Logging(logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	logger = logger.Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic while serving request",
						zap.Any("panic", p),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					if rec.status == 0 {
						http.Error(rec, "internal server error", http.StatusInternalServerError)
					}
				}

				if rec.status == 0 {
					rec.status = http.StatusOK
				}
				elapsed := time.Since(start)

				// the matched pattern keeps metric cardinality bounded
				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				m.ObserveHTTP(r.Method, route, rec.status, elapsed)

				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rec.status),
					zap.Int("bytes", rec.bytes),
					zap.Duration("duration", elapsed),
					zap.String("remote_addr", r.RemoteAddr),
				}
				if rec.status >= http.StatusInternalServerError {
					logger.Warn("request", fields...)
				} else {
					logger.Info("request", fields...)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
