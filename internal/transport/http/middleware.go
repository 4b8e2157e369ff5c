package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pjm714059-code/baro-toss-test/internal/metrics"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger logs basic request details and latency, tags every request
// with an ID, and records request metrics when a metric set is supplied.
func RequestLogger(next http.Handler, logger *log.Logger, m *metrics.ServerMetrics) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		logger.Printf(
			"request id=%s method=%s path=%s status=%d duration=%s",
			requestID,
			r.Method,
			r.URL.Path,
			rec.status,
			elapsed,
		)

		if m != nil {
			m.Requests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
			m.LatencyMS.WithLabelValues(r.URL.Path).Observe(float64(elapsed.Milliseconds()))
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
