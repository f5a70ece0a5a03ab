package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/config"
	"github.com/spec-kit/vendorflow-web/internal/domain"
	"github.com/spec-kit/vendorflow-web/internal/observability"
)

const maxResponseBody = 4 << 20

// Client talks to the remote marketplace REST API. Every authorized call
// carries the caller's bearer token; every call takes the inbound request's
// context so navigating away cancels in-flight work.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds a client for the configured backend.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
		metrics:    metrics,
	}
}

// do performs one backend call. token may be ""; body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordBackendCall(path, 0)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	c.metrics.RecordBackendCall(path, resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.Debug("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Login authenticates against POST /Auth/login. The backend answers either
// a {token, role} object or the token itself; both are normalized. An empty
// token in a 2xx response is a login failure for the caller to handle.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/Auth/login", nil, "", creds, &raw); err != nil {
		return nil, err
	}

	result := &LoginResult{}
	if len(raw) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, result); err == nil && result.Token != "" {
		return result, nil
	}
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &LoginResult{Token: bare}, nil
	}
	return result, nil
}

// CreateUser registers a customer account.
func (c *Client) CreateUser(ctx context.Context, reg CustomerRegistration) error {
	return c.do(ctx, http.MethodPost, "/User/CreateUser", nil, "", reg, nil)
}

// CreateVendor registers a vendor account with its business profile.
func (c *Client) CreateVendor(ctx context.Context, reg VendorRegistration) error {
	return c.do(ctx, http.MethodPost, "/Vendor/CreateVendor", nil, "", reg, nil)
}

// Categories lists service categories.
func (c *Client) Categories(ctx context.Context, token string, onlyActive bool) ([]domain.Category, error) {
	query := url.Values{"onlyActive": {strconv.FormatBool(onlyActive)}}
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/Categories/GetAllCategory", query, token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Services lists every service on the marketplace.
func (c *Client) Services(ctx context.Context, token string) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.do(ctx, http.MethodGet, "/Serve/GetAllservices", nil, token, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FilterServices narrows the listing by any subset of category, city and
// pincode. An empty filter falls back to the full listing.
func (c *Client) FilterServices(ctx context.Context, token string, filter ServiceFilter) ([]domain.Service, error) {
	if filter.Empty() {
		return c.Services(ctx, token)
	}
	query := url.Values{}
	if filter.CategoryID != "" {
		query.Set("categoryId", filter.CategoryID)
	}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.Pincode != "" {
		query.Set("pincode", filter.Pincode)
	}
	var services []domain.Service
	if err := c.do(ctx, http.MethodGet, "/Serve/services/Filterbooking", query, token, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// VendorServices lists the services owned by one vendor.
func (c *Client) VendorServices(ctx context.Context, token, vendorID string) ([]domain.Service, error) {
	query := url.Values{"vendorId": {vendorID}}
	var services []domain.Service
	if err := c.do(ctx, http.MethodGet, "/Serve/GetByVendorID", query, token, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// CreateService adds a listing for the vendor.
func (c *Client) CreateService(ctx context.Context, token, vendorID string, payload ServicePayload) error {
	query := url.Values{"vendorId": {vendorID}}
	return c.do(ctx, http.MethodPost, "/Serve/CreateService", query, token, payload, nil)
}

// UpdateService replaces a listing's details.
func (c *Client) UpdateService(ctx context.Context, token, vendorID string, serviceID int64, payload ServicePayload) error {
	query := url.Values{
		"vendorId":  {vendorID},
		"serviceId": {strconv.FormatInt(serviceID, 10)},
	}
	return c.do(ctx, http.MethodPut, "/Serve/UpdateService", query, token, payload, nil)
}

// DeleteService removes a listing.
func (c *Client) DeleteService(ctx context.Context, token, vendorID string, serviceID int64) error {
	query := url.Values{
		"vendorId":  {vendorID},
		"serviceId": {strconv.FormatInt(serviceID, 10)},
	}
	return c.do(ctx, http.MethodDelete, "/Serve/DeleteService", query, token, nil, nil)
}

// CreateBooking books a service slot for the authenticated customer.
func (c *Client) CreateBooking(ctx context.Context, token string, req BookingRequest) error {
	return c.do(ctx, http.MethodPost, "/Booking/bookings", nil, token, req, nil)
}

// MyBookings lists the authenticated customer's bookings.
func (c *Client) MyBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/Booking/mybookings", nil, token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// VendorBookings lists incoming booking requests for one vendor.
func (c *Client) VendorBookings(ctx context.Context, token, vendorID string) ([]domain.Booking, error) {
	query := url.Values{"vendorId": {vendorID}}
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/Booking/vendorbookings", query, token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingDetails reschedules a booking.
func (c *Client) UpdateBookingDetails(ctx context.Context, token string, upd BookingDetailsUpdate) error {
	return c.do(ctx, http.MethodPut, "/Booking/UpdatebookingDetails", nil, token, upd, nil)
}

// DeleteBooking cancels a booking.
func (c *Client) DeleteBooking(ctx context.Context, token string, bookingID int64) error {
	query := url.Values{"bookingId": {strconv.FormatInt(bookingID, 10)}}
	return c.do(ctx, http.MethodDelete, "/Booking/Deletebooking", query, token, nil, nil)
}

// UpdateBookingStatus moves a booking to a new status. The bookingId rides
// in the query string and the status in the body, per the backend's contract.
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, bookingID int64, status domain.BookingStatus) error {
	query := url.Values{"bookingId": {strconv.FormatInt(bookingID, 10)}}
	body := struct {
		Status domain.BookingStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/Booking/bookingstatusupdate", query, token, body, nil)
}
