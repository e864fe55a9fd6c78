package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vendorops/insights/infrastructure/http/response"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

var errPanic = errors.New("handler panic")

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs and records every request under its route template so
// entity ids do not explode metric cardinality.
func RequestLogger(log logger.Logger, recorder HTTPRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			if recorder != nil {
				recorder.ObserveHTTP(route, r.Method, sw.status, elapsed)
			}
			log.Info(r.Context(), "HTTP request", map[string]interface{}{
				"method":      r.Method,
				"route":       route,
				"status":      sw.status,
				"duration_ms": elapsed.Milliseconds(),
				"remote_addr": r.RemoteAddr,
			})
		})
	}
}

// Recovery turns a handler panic into a 500 envelope.
func Recovery(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error(r.Context(), "Panic recovered", nil, map[string]interface{}{
						"panic": p,
						"path":  r.URL.Path,
					})
					response.AppError(w, errPanic)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
