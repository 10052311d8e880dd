package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dmbot/pkg/controller"
)

func TestWithMetrics_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	controller.WithMetrics(next).ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, res.StatusCode)
	}
	if body := rec.Body.String(); body != "short and stout" {
		t.Fatalf("unexpected body %q", body)
	}
}
