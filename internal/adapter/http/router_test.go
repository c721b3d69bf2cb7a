package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/adapter/http/handler"
	apimiddleware "github.com/iho/daodash/internal/adapter/http/middleware"
	"github.com/iho/daodash/internal/adapter/idgen"
	"github.com/iho/daodash/internal/usecase"
	"github.com/iho/daodash/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_in_flight") {
		t.Fatalf("expected http metrics in exposition")
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/toasts/", strings.NewReader(`{"title":"Saved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if store.ttl != 24*time.Hour {
		t.Fatalf("expected default idempotency ttl, got %s", store.ttl)
	}
}

func TestNewRouter_IdempotentCreateRaisesOneToast(t *testing.T) {
	cfg := newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = mocks.NewMemoryIdempotencyStore()
		cfg.IdempotencyTTL = time.Minute
	})
	router := NewRouter(cfg)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/toasts/", strings.NewReader(`{"title":"Vote cast"}`))
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "vote-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/toasts/", nil))

	var list dto.ListToastsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected one toast, got %d", list.Total)
	}
}

func TestNewRouter_ToastLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodPost, "/api/v1/toasts/", `{"title":"First"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodPost, "/api/v1/toasts/", `{"title":"Second","variant":"destructive"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	if rec := do(http.MethodPatch, "/api/v1/toasts/toast-1", `{"title":"First (edited)"}`); rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodPost, "/api/v1/toasts/toast-2/dismiss", ""); rec.Code != http.StatusOK {
		t.Fatalf("dismiss failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := do(http.MethodGet, "/api/v1/toasts/", "")
	var list dto.ListToastsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if list.Total != 2 || list.Toasts[0].ID != "toast-2" || list.Toasts[0].Open {
		t.Fatalf("unexpected queue after dismiss: %+v", list.Toasts)
	}
	if list.Toasts[1].Title != "First (edited)" {
		t.Fatalf("expected update to apply, got %+v", list.Toasts[1])
	}

	if rec := do(http.MethodPost, "/api/v1/toasts/dismiss", ""); rec.Code != http.StatusOK {
		t.Fatalf("dismiss all failed: %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/api/v1/toasts/toast-1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("remove failed: %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/api/v1/toasts/toast-1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected removed toast to be gone, got %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/api/v1/toasts/", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear failed: %d", rec.Code)
	}
}

func TestNewRouter_FormatsTokenAmount(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/format",
		strings.NewReader(`{"base_units":"1234567800000000000000","decimals":18,"symbol":"ANT"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TokenAmountResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Abbreviated != "1234.57 ANT" {
		t.Fatalf("expected abbreviated 1234.57 ANT, got %q", resp.Abbreviated)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/tokens/format",
		"POST /api/v1/tokens/parse",
		"POST /api/v1/tallies",
		"GET /api/v1/timezones",
		"GET /api/v1/timezones/difference",
		"POST /api/v1/schedule/date",
		"POST /api/v1/schedule/gap",
		"POST /api/v1/schedule/validate",
		"GET /api/v1/schedule/date-ahead",
		"GET /api/v1/schedule/countdown",
		"POST /api/v1/members/format",
		"GET /api/v1/toasts/",
		"POST /api/v1/toasts/",
		"DELETE /api/v1/toasts/",
		"POST /api/v1/toasts/dismiss",
		"GET /api/v1/toasts/{id}",
		"PATCH /api/v1/toasts/{id}",
		"DELETE /api/v1/toasts/{id}",
		"POST /api/v1/toasts/{id}/dismiss",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	clock := mocks.NewFakeClock(time.Date(2022, 12, 15, 8, 0, 0, 0, time.UTC))

	queue := usecase.NewToastQueue(usecase.ToastQueueConfig{
		IDGen:     idgen.NewSequence("toast-"),
		Scheduler: mocks.NewManualScheduler(),
	})

	cfg := RouterConfig{
		HealthHandler:   handler.NewHealthHandler(nil),
		TokenHandler:    handler.NewTokenHandler(usecase.NewTokenUseCase(nil)),
		ScheduleHandler: handler.NewScheduleHandler(usecase.NewScheduleUseCase(clock, 0, nil)),
		MemberHandler:   handler.NewMemberHandler(usecase.NewMemberUseCase()),
		ToastHandler:    handler.NewToastHandler(queue),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
	ttl         time.Duration
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	s.ttl = ttl
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
