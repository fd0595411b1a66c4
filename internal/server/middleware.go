package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by RequestID, or an
// empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestID generates a UUID v7 request ID, or reuses the incoming one when
// trustIncoming is set, and exposes it on the request, the response and the
// request context.
func RequestID(trustIncoming bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if trustIncoming {
				id = r.Header.Get(RequestIDHeader)
			}

			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
			}

			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

			next.ServeHTTP(w, r)
		})
	}
}

// Recovery turns a panic in a downstream handler into 500 Internal Server
// Error and logs the recovered value.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rv := recover(); rv != nil {
					if rv == http.ErrAbortHandler {
						panic(rv)
					}

					logger.Error().
						Str("request_id", RequestIDFromContext(r.Context())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", rv).
						Msg("handler panicked")

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger.Info().
				Str("request_id", RequestIDFromContext(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// SecurityHeaders sets the nosniff, frame and referrer headers on every
// response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// CacheControl sets Cache-Control on successful responses that do not set
// it themselves. A zero maxAge forces revalidation.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := "no-cache"
	if maxAge > 0 {
		value = "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&cacheControlResponseWriter{ResponseWriter: w, value: value}, r)
		})
	}
}

type cacheControlResponseWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (cw *cacheControlResponseWriter) WriteHeader(statusCode int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	if statusCode == http.StatusOK && cw.Header().Get("Cache-Control") == "" {
		cw.Header().Set("Cache-Control", cw.value)
	}

	cw.ResponseWriter.WriteHeader(statusCode)
}

func (cw *cacheControlResponseWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}

	return cw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for middleware compatibility.
func (cw *cacheControlResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
