// Package api is a small REST client for the RentHive booking endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"renthive-backend/internal/domain/apperr"
)

// Error is a non-2xx response. It unwraps to the apperr class of its status, so
// errors.Is(err, apperr.ErrConflict) works on client errors too.
type Error struct {
	Status  int
	Message string
	Details []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return classOf(e.Status) }

func classOf(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.ErrForbidden
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	case http.StatusPaymentRequired:
		return apperr.ErrPayment
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperr.ErrTransient
	}
	return nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	now        func() time.Time
}

// New builds a client for baseURL. token is the bearer token; it may be empty for
// public endpoints. A nil httpClient gets a 10s timeout.
func New(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		now:        time.Now,
	}
}

func (c *Client) GetListing(ctx context.Context, kind, listingID string) (*Listing, error) {
	var out Listing
	if err := c.do(ctx, http.MethodGet, "/listings/"+url.PathEscape(kind)+"/"+url.PathEscape(listingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Quote(ctx context.Context, kind, listingID, start, end string) (*Quote, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start_date", start)
	}
	if end != "" {
		q.Set("end_date", end)
	}
	path := "/listings/" + url.PathEscape(kind) + "/" + url.PathEscape(listingID) + "/quote"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out Quote
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateApplication(ctx context.Context, in CreateApplication) (*Application, error) {
	var out Application
	if err := c.do(ctx, http.MethodPost, "/bookings/applications", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateApplication(ctx context.Context, applicationID, start, end string) (*Application, error) {
	body := map[string]string{"start_date": start, "end_date": end}
	var out Application
	if err := c.do(ctx, http.MethodPut, "/bookings/applications/"+url.PathEscape(applicationID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelApplication(ctx context.Context, applicationID string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/applications/"+url.PathEscape(applicationID), nil, nil)
}

func (c *Client) MyApplications(ctx context.Context, includeCancelled bool) ([]Application, error) {
	var out []Application
	path := "/bookings/applications?include_cancelled=" + strconv.FormatBool(includeCancelled)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OwnerBookings(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.do(ctx, http.MethodGet, "/owners/all-bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decide approves (approve=true) or rejects an application; reason is sent only on reject.
func (c *Client) Decide(ctx context.Context, applicationID string, approve bool, reason string) (*Application, error) {
	path := "/owners/bookings/" + url.PathEscape(applicationID)
	var body any
	if approve {
		path += "/approve"
	} else {
		path += "/reject"
		if reason != "" {
			body = map[string]string{"reason": reason}
		}
	}
	var out Application
	if err := c.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Pay(ctx context.Context, applicationID, method string) (*Receipt, error) {
	var out Receipt
	body := map[string]string{"method": method}
	if err := c.do(ctx, http.MethodPost, "/bookings/pay/"+url.PathEscape(applicationID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
		req.Header.Set("X-Request-At", c.now().UTC().Format(time.RFC3339))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperr.ErrTransient, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Error   string       `json:"error"`
			Details []FieldError `json:"details"`
		}
		if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
			apiErr.Message, apiErr.Details = payload.Error, payload.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(b))
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
