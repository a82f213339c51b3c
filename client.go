package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxTokenSize caps how much of a login response is read
const maxTokenSize = 1024

// HTTPClient talks to the forecast service over HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// ClientOption configures an HTTPClient
type ClientOption func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the service listening at baseURL
func NewClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping sends a HEAD request to the service root
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodHead, "/", "", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Login acquires a new token
func (c *HTTPClient) Login(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/login", "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if len(body) > maxTokenSize {
		return "", fmt.Errorf("token exceeds %d bytes: %w", maxTokenSize, ErrUnexpectedStatus)
	}
	return string(body), nil
}

// Logout revokes token
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/login", token, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Forecast fetches the forecast for the day of date
func (c *HTTPClient) Forecast(ctx context.Context, date time.Time) (Forecast, error) {
	resp, err := c.do(ctx, http.MethodGet, forecastPath(date), "", nil)
	if err != nil {
		return Forecast{}, err
	}
	defer resp.Body.Close()

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return Forecast{}, fmt.Errorf("failed to decode forecast: %w", err)
	}
	return forecast, nil
}

// SetForecast overwrites the forecast for the day of date
func (c *HTTPClient) SetForecast(ctx context.Context, token string, date time.Time, forecast Forecast) error {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, forecastPath(date), token, payload)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func forecastPath(date time.Time) string {
	return "/weatherforecast?date=" + url.QueryEscape(date.Format(time.RFC3339))
}

// do sends the request and maps non 2xx responses to sentinel errors
func (c *HTTPClient) do(ctx context.Context, method, path, token string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	msg := readError(resp.Body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	default:
		sentinel = ErrUnexpectedStatus
	}

	if msg != "" {
		return nil, fmt.Errorf("%s %s: %s: %w", method, path, msg, sentinel)
	}
	return nil, fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, sentinel)
}

func readError(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
