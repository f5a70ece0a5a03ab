package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/config"
	"github.com/spec-kit/vendorflow-web/internal/observability"
	"github.com/spec-kit/vendorflow-web/internal/service"
	"github.com/spec-kit/vendorflow-web/internal/session"
)

const testCookie = "vf_session"

// stubBackend stands in for the remote marketplace API and records every
// request it receives.
type stubBackend struct {
	mu sync.Mutex

	loginStatus        int
	loginBody          string
	createUserStatus   int
	createVendorStatus int

	requests      []string
	bookingPosts  []bookingPost
	statusUpdates []statusUpdate
}

type bookingPost struct {
	auth string
	req  backend.BookingRequest
}

type statusUpdate struct {
	bookingID string
	status    string
}

func (s *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/Auth/login":
		status := s.loginStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if s.loginBody != "" {
			_, _ = io.WriteString(w, s.loginBody)
		}
	case r.Method == http.MethodPost && r.URL.Path == "/User/CreateUser":
		status := s.createUserStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
	case r.Method == http.MethodPost && r.URL.Path == "/Vendor/CreateVendor":
		status := s.createVendorStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
	case r.Method == http.MethodPost && r.URL.Path == "/Booking/bookings":
		var req backend.BookingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.bookingPosts = append(s.bookingPosts, bookingPost{auth: r.Header.Get("Authorization"), req: req})
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPut && r.URL.Path == "/Booking/bookingstatusupdate":
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.statusUpdates = append(s.statusUpdates, statusUpdate{
			bookingID: r.URL.Query().Get("bookingId"),
			status:    body.Status,
		})
		s.mu.Unlock()
	default:
		_, _ = io.WriteString(w, "[]")
	}
}

func (s *stubBackend) count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if req == method+" "+path {
			n++
		}
	}
	return n
}

func (s *stubBackend) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// newTestApp wires the full application against the given backend URL with
// an in-memory session store.
func newTestApp(backendURL string) (*fiber.App, *session.MemoryStore) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, logger)
	api := backend.NewClient(config.BackendConfig{BaseURL: backendURL, TimeoutSeconds: 5}, logger, metrics)
	flows := service.NewAuthService(api, sessions, logger)
	guard := NewGuard(sessions, config.SessionConfig{
		Store:      "memory",
		CookieName: testCookie,
		TTLMinutes: 60,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Pages:    NewPagesHandler(),
		Auth:     NewAuthHandler(flows, guard, logger),
		Bookings: NewBookingsHandler(api, guard, logger),
		Services: NewServicesHandler(api, guard, logger),
		Health:   NewHealthHandler("test", "dev", nil),
		Guard:    guard,
	})
	return app, store
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func vendorClaims() jwt.MapClaims {
	return jwt.MapClaims{"sub": "vendor@b.test", "role": "Vendor", "VendorId": "42"}
}

func customerClaims() jwt.MapClaims {
	return jwt.MapClaims{"sub": "customer@b.test", "role": "Customer"}
}

// seedSession plants a logged-in session directly in the store.
func seedSession(t *testing.T, store *session.MemoryStore, claims jwt.MapClaims) (sid, token string) {
	t.Helper()
	sid = session.NewSessionID()
	token = signToken(t, claims)
	if err := store.Set(context.Background(), sid, session.KeyToken, token); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sid, token
}

func formRequest(path string, form url.Values, sid string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	return req
}

func getRequest(path, sid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func sessionCookie(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == testCookie {
			return cookie.Value
		}
	}
	return ""
}
