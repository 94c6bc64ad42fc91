package middleware

import (
	"net/http"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rr, r)

		logger.Info("%s %s %d %s", r.Method, r.RequestURI, rr.statusCode, time.Since(start))
	})
}
