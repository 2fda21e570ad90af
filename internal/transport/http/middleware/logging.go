package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// logEntry is one request as a JSON line. The byte count is there for
// the document endpoints: a payslip response of a few hundred bytes
// means the PDF never rendered.
type logEntry struct {
	Timestamp  string `json:"ts"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Bytes      int    `json:"bytes"`
	Duration   int64  `json:"durationMs"`
	RemoteAddr string `json:"remoteAddr"`
	RequestID  string `json:"requestId"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		entry := logEntry{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     recorder.status,
			Bytes:      recorder.bytes,
			Duration:   time.Since(start).Milliseconds(),
			RemoteAddr: r.RemoteAddr,
			RequestID:  GetRequestID(r.Context()),
		}

		payload, _ := json.Marshal(entry)
		log.Println(string(payload))
	})
}
