package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func echoPrincipal(t *testing.T, seen *domain.Principal, found *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, *found = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		role       string
		wantStatus int
		wantFound  bool
		want       domain.Principal
	}{
		{name: "anonymous", wantStatus: http.StatusNoContent},
		{name: "client", id: "7", role: "client", wantStatus: http.StatusNoContent, wantFound: true,
			want: domain.Principal{Role: domain.RoleClient, ID: 7}},
		{name: "administrator", id: "1", role: "administrator", wantStatus: http.StatusNoContent, wantFound: true,
			want: domain.Principal{Role: domain.RoleAdministrator, ID: 1}},
		{name: "unknown role", id: "7", role: "owner", wantStatus: http.StatusUnauthorized},
		{name: "role without id", role: "client", wantStatus: http.StatusUnauthorized},
		{name: "id without role", id: "7", wantStatus: http.StatusUnauthorized},
		{name: "negative id", id: "-3", role: "client", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen domain.Principal
			var found bool
			h := Auth(logger.NewNop())(echoPrincipal(t, &seen, &found))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.id != "" {
				req.Header.Set(HeaderUserID, tt.id)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, seen)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole(domain.RoleProfessional, domain.RoleAdministrator)(ok)

	serve := func(p *domain.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if p != nil {
			req = req.WithContext(WithPrincipal(req.Context(), *p))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&domain.Principal{Role: domain.RoleClient, ID: 1}))
	assert.Equal(t, http.StatusNoContent, serve(&domain.Principal{Role: domain.RoleProfessional, ID: 2}))
	assert.Equal(t, http.StatusNoContent, serve(&domain.Principal{Role: domain.RoleAdministrator, ID: 3}))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, logger.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := rl.Middleware(ok)

	serve := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1:1000", ""))
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1:2000", ""))
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:3000", ""))

	// Другой IP имеет собственный лимит
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.2:1000", ""))

	// X-Forwarded-For важнее адреса прокси
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1:4000", "192.168.1.5, 10.0.0.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, logger.NewNop())
	now := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

	rl.getLimiter("10.0.0.1", now)
	rl.getLimiter("10.0.0.2", now.Add(50*time.Minute))

	rl.Cleanup(now.Add(90 * time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

type observation struct {
	method string
	route  string
	status int
}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingMetrics) ObserveHTTP(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method: method, route: route, status: status})
}

func TestHTTPMetrics_UsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}
	r := mux.NewRouter()
	r.Use(HTTPMetrics(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/43", nil))

	require.Len(t, m.obs, 2)
	for _, o := range m.obs {
		assert.Equal(t, observation{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusNotFound}, o)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
