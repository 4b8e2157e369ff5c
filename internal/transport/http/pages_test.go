package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPages(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.Handle("/success", SuccessPage())
	mux.Handle("/fail", FailPage())
	mux.Handle("/", CheckoutPage())

	t.Run("checkout page at root", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("expected html content type, got %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "/create-order") {
			t.Fatalf("expected checkout page to reference /create-order")
		}
	})

	t.Run("success page posts to confirm", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/success", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "/confirm") {
			t.Fatalf("expected success page to reference /confirm")
		}
	})

	t.Run("fail page served", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("unknown path under root is a JSON 404", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), codeNotFound) {
			t.Fatalf("expected json 404 body, got %q", rec.Body.String())
		}
	})

	t.Run("pages reject non-GET", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/success", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", rec.Code)
		}
	})
}
