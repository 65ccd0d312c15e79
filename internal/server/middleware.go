package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/alice"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

type contextKeyRequestID string

const requestIDKey contextKeyRequestID = "requestID"

// RequestIDFromContext returns the request id stored by the request id
// middleware, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// chain is the middleware stack applied to every request, outermost first.
func chain(logger *zap.Logger) alice.Chain {
	return alice.New(
		requestIDMiddleware(),
		loggingMiddleware(logger),
		recoverMiddleware(logger),
	)
}

// requestIDMiddleware keeps an incoming X-Request-ID or assigns a new uuid.
func requestIDMiddleware() alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggingMiddleware(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String("op", "server.loggingMiddleware"),
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Debug("request completed", fields...)
			}
		})
	}
}

func recoverMiddleware(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic while serving request",
						zap.String("op", "server.recoverMiddleware"),
						zap.String("request_id", RequestIDFromContext(r.Context())),
						zap.String("path", r.URL.Path),
						zap.Any("panic", err),
						zap.Stack("stack"),
					)
					writeJSON(logger, w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
