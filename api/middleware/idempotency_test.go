package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

const publishPath = "/api/v1/facebook/posts/publish"

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    time.Duration
		ok      bool
	}{
		{"publish", http.MethodPost, "/api/v1/facebook/posts/publish", criticalIdempotencyTTL, true},
		{"republish", http.MethodPost, "/api/v1/facebook/posts/{id}/republish", defaultIdempotencyTTL, true},
		{"order status", http.MethodPost, "/api/v1/orders/{id}/status", defaultIdempotencyTTL, true},
		{"cart items", http.MethodPost, "/api/v1/carts/{id}/items", defaultIdempotencyTTL, true},
		{"discount create", http.MethodPost, "/api/v1/product-discounts", defaultIdempotencyTTL, true},
		{"discount update", http.MethodPut, "/api/v1/product-discounts/{id}", 0, false},
		{"attribute create", http.MethodPost, "/api/v1/attributes", 0, false},
	}

	for _, tt := range tests {
		ttl, ok := routeTTL(tt.method, tt.pattern)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v got %v", tt.name, tt.ok, ok)
		}
		if ok && ttl != tt.want {
			t.Fatalf("%s: expected ttl=%v got %v", tt.name, tt.want, ttl)
		}
	}
}

func TestIdempotencyMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{"foo":"bar"}`))
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d", resp.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler executed %d times, expected 2", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected nothing stored, got %d records", len(store.data))
	}
}

func TestIdempotencyMiddlewareSkipsTransientFailures(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	req := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "retry-me")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	if len(store.data) != 0 {
		t.Fatalf("expected 503 response not to be stored")
	}
}

func TestIdempotencyMiddlewareSkipsAuthRejections(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		store := newFakeStore()
		mw := Idempotency(store, nil)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		req := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "scope-later")
		mw(handler).ServeHTTP(httptest.NewRecorder(), req)

		if len(store.data) != 0 {
			t.Fatalf("expected %d response not to be stored", status)
		}
	}
}

func TestReplayableStatuses(t *testing.T) {
	cases := map[int]bool{
		http.StatusCreated:             true,
		http.StatusUnprocessableEntity: true,
		http.StatusUnauthorized:        false,
		http.StatusForbidden:           false,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  false,
	}
	for status, want := range cases {
		if got := replayable(status); got != want {
			t.Fatalf("replayable(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{"foo":"bar"}`))
	req.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected first response 202 got %d", resp.Code)
	}

	replay := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{"foo":"bar"}`))
	replay.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, replay)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected replay status 202 got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("expected stored body got %s", rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{"foo":"bar"}`))
	req.Header.Set("Idempotency-Key", "xyz")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	replay := requestWithPattern(http.MethodPost, publishPath, publishPath, strings.NewReader(`{"foo":"diff"}`))
	replay.Header.Set("Idempotency-Key", "xyz")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, replay)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Status string `json:"status"`
		Code   string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Status != "failed" || payload.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected failed envelope with code %s got %+v", pkgerrors.CodeIdempotency, payload)
	}
}

func TestRoutePatternFallsBackToPathUnderParentRouter(t *testing.T) {
	req := requestWithPattern(http.MethodPost, "/api/v1/orders/", "/api/v1/*", nil)
	if got := routePattern(req); got != "/api/v1/orders" {
		t.Fatalf("expected concrete path, got %q", got)
	}
	if _, ok := routeTTL(http.MethodPost, routePattern(req)); !ok {
		t.Fatal("expected order creation to be idempotent")
	}

	req = requestWithPattern(http.MethodPost, "/api/v1/carts/4/items", "/api/v1/carts/{id}/items", nil)
	if got := routePattern(req); got != "/api/v1/carts/{id}/items" {
		t.Fatalf("expected resolved pattern, got %q", got)
	}
}
