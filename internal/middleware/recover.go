package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// Recoverer converts a handler panic into an unclassified fault so the client
// still receives a problem response. A response that has already started
// cannot be replaced; the fault is then only logged.
func (m *ProblemMapper) Recoverer() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := errors.Errorf("panic: %v", rec)
					if sw.wroteHeader {
						kind := utils.Classify(err)
						status, _ := utils.StatusAndTitle(kind)
						m.log(err, kind, status, r.URL.Path)
						return
					}
					m.Respond(w, r, err)
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

// RequestLogger logs one line per request at debug level.
func RequestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
			}).Debug("request handled")
		})
	}
}
