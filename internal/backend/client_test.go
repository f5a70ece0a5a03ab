package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/config"
	"github.com/spec-kit/vendorflow-web/internal/domain"
	"github.com/spec-kit/vendorflow-web/internal/observability"
)

func newTestClient(serverURL string) *Client {
	cfg := config.BackendConfig{BaseURL: serverURL, TimeoutSeconds: 5}
	return NewClient(cfg, zap.NewNop(), observability.NewMetrics())
}

func TestLoginResponseShapes(t *testing.T) {
	t.Run("object with token and role", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/Auth/login" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "abc", "role": "Vendor"})
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Login(context.Background(), Credentials{Email: "a@b.test", Password: "pw"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.Token != "abc" || result.Role != "Vendor" {
			t.Fatalf("unexpected result %+v", result)
		}
	})

	t.Run("bare token string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode("abc")
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Login(context.Background(), Credentials{})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.Token != "abc" || result.Role != "" {
			t.Fatalf("unexpected result %+v", result)
		}
	})

	t.Run("empty body means no token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Login(context.Background(), Credentials{})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.Token != "" {
			t.Fatalf("expected no token, got %q", result.Token)
		}
	})
}

func TestAPIErrorMapping(t *testing.T) {
	t.Run("status and json message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
		}))
		defer server.Close()

		err := newTestClient(server.URL).CreateUser(context.Background(), CustomerRegistration{})
		if !HasStatus(err, http.StatusConflict) {
			t.Fatalf("expected 409, got %v", err)
		}
		if ServerMessage(err) != "email already registered" {
			t.Fatalf("expected server message, got %q", ServerMessage(err))
		}
	})

	t.Run("plain text body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "bad payload")
		}))
		defer server.Close()

		err := newTestClient(server.URL).CreateUser(context.Background(), CustomerRegistration{})
		if ServerMessage(err) != "bad payload" {
			t.Fatalf("expected raw body as message, got %q", ServerMessage(err))
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestClient(server.URL).Login(context.Background(), Credentials{})
		if !errors.Is(err, ErrUnreachable) {
			t.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})
}

func TestBearerAttachment(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "[]")
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	if _, err := client.MyBookings(context.Background(), "tok123"); err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if authHeader != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", authHeader)
	}

	if _, err := client.MyBookings(context.Background(), ""); err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if authHeader != "" {
		t.Fatalf("anonymous call must not carry Authorization, got %q", authHeader)
	}
}

func TestFilterServices(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, "[]")
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	t.Run("subset of params", func(t *testing.T) {
		_, err := client.FilterServices(context.Background(), "tok", ServiceFilter{City: "Coimbatore"})
		if err != nil {
			t.Fatalf("FilterServices: %v", err)
		}
		if gotPath != "/Serve/services/Filterbooking" {
			t.Fatalf("unexpected path %q", gotPath)
		}
		if got := gotQuery["city"]; len(got) != 1 || got[0] != "Coimbatore" {
			t.Fatalf("expected city param, got %v", gotQuery)
		}
		if _, ok := gotQuery["categoryId"]; ok {
			t.Fatal("unset params must be omitted")
		}
	})

	t.Run("empty filter lists everything", func(t *testing.T) {
		_, err := client.FilterServices(context.Background(), "tok", ServiceFilter{})
		if err != nil {
			t.Fatalf("FilterServices: %v", err)
		}
		if gotPath != "/Serve/GetAllservices" {
			t.Fatalf("unexpected path %q", gotPath)
		}
	})
}

func TestCreateBookingPayload(t *testing.T) {
	var posts int
	var got BookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/Booking/bookings" {
			posts++
			_ = json.NewDecoder(r.Body).Decode(&got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	req := BookingRequest{
		ServiceID:         5,
		ScheduledDate:     "2024-12-01",
		ScheduledTimeSlot: "09:00 AM - 10:00 AM",
		UserNotes:         "ring the bell",
	}
	if err := newTestClient(server.URL).CreateBooking(context.Background(), "tok", req); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if posts != 1 {
		t.Fatalf("expected exactly one POST, got %d", posts)
	}
	if got != req {
		t.Fatalf("payload mismatch: %+v", got)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	var gotQuery string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/Booking/bookingstatusupdate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("bookingId")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer server.Close()

	err := newTestClient(server.URL).UpdateBookingStatus(context.Background(), "tok", 7, domain.BookingStatusAccepted)
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if gotQuery != "7" {
		t.Fatalf("expected bookingId=7, got %q", gotQuery)
	}
	if gotBody["status"] != "Accepted" {
		t.Fatalf("expected status Accepted in body, got %v", gotBody)
	}
}
