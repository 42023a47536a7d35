package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrNotFound is returned when the provider answered but had no usable data.
	ErrNotFound = errors.New("not found")
	// ErrTransport is returned when the provider could not be reached, answered
	// with a non-success status, or sent a body that could not be parsed.
	ErrTransport = errors.New("transport error")

	errServerError  = errors.New("server error")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// Transport issues a GET against a provider endpoint and returns the raw
// status and body. Statuses are not interpreted beyond what the
// implementation needs for its own health tracking.
type Transport interface {
	Get(ctx context.Context, endpoint string, params url.Values) (int, []byte, error)
}

// HTTPTransport is a Transport backed by net/http and guarded by a circuit
// breaker. A single call is attempted per Get; there are no retries.
type HTTPTransport struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPTransport creates a transport with its own breaker named name.
func NewHTTPTransport(client *http.Client, name string) *HTTPTransport {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPTransport{
		client:  client,
		circuit: cb,
	}
}

type rawResponse struct {
	status int
	body   []byte
}

// Get builds the request URL from endpoint and params and executes it once.
// Network failures, 5xx answers and an open breaker are returned as errors;
// any other status is returned to the caller together with the body.
func (t *HTTPTransport) Get(ctx context.Context, endpoint string, params url.Values) (int, []byte, error) {
	if t.client == nil {
		return 0, nil, errNoHTTPClient
	}

	u := endpoint
	if len(params) > 0 {
		u = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	result, err := t.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, redactURL(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		// Only server-side failures count against the breaker.
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}

		return rawResponse{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return 0, nil, err
	}

	raw, ok := result.(rawResponse)
	if !ok {
		return 0, nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return raw.status, raw.body, nil
}

// redactURL drops the request URL from a client error. The URL carries the
// API key in its query string.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
