package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomly/pkg/logger"

	"github.com/google/uuid"
)

func TestRequestLogging_RequestIDIsUUID(t *testing.T) {
	log := logger.New(logger.Config{Output: io.Discard})

	var captured string
	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured == "" {
		t.Fatal("expected a request id in context")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("request id %q is not a valid uuid: %v", captured, err)
	}
}

func TestRequestLogging_DistinctIDsPerRequest(t *testing.T) {
	log := logger.New(logger.Config{Output: io.Discard})

	seen := make(map[string]bool)
	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[requestIDFromContext(r.Context())] = true
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	if len(seen) != 5 {
		t.Errorf("expected 5 distinct request ids, got %d", len(seen))
	}
}
