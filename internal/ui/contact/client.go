package contact

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Outcome classifies a finished submission request.
type Outcome int

const (
	// OutcomeNone means no request was sent.
	OutcomeNone Outcome = iota
	// OutcomeSuccess is a 2xx response.
	OutcomeSuccess
	// OutcomeFailure is any other HTTP response.
	OutcomeFailure
	// OutcomeNetworkError means no response arrived.
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeNetworkError:
		return "network-error"
	}
	return "unknown"
}

// Request is one form submission on the wire.
type Request struct {
	URL    string
	Method string
	Values url.Values
}

// Client sends a Request and classifies the result. Implementations never
// retry.
type Client interface {
	Send(ctx context.Context, req Request) Outcome
}

// HTTPClient is the net/http Client. Under js/wasm net/http is backed by
// the browser's fetch.
type HTTPClient struct {
	HTTP *http.Client
}

// NewHTTPClient returns an HTTPClient with the given request timeout.
// Zero means no timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{HTTP: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Send(ctx context.Context, req Request) Outcome {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), req.URL, strings.NewReader(req.Values.Encode()))
	if err != nil {
		return OutcomeNetworkError
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return OutcomeNetworkError
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
