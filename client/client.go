// Package client is the resilient request layer in front of the
// events backend: it builds authenticated HTTP calls, retries
// transport timeouts with jittered exponential backoff, and decodes
// JSON responses into typed results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/eventos-bot/metrics"
)

// Client talks to the events backend. It is stateless per call; it
// owns only the HTTP client configuration.
type Client struct {
	http        *http.Client
	baseURL     string
	maxRetries  int
	backoffUnit time.Duration
	log         *slog.Logger
}

// New builds a Client against baseURL with a per-request timeout and a
// maximum attempt count for timed-out requests.
func New(baseURL string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		backoffUnit: time.Second,
		log:         slog.Default(),
	}
}

// request is the shape of one backend call: an HTTP method plus either
// query parameters or a JSON body. One internal sender consumes it.
type request struct {
	method string
	query  url.Values
	body   any
}

func get(query url.Values) request {
	return request{method: http.MethodGet, query: query}
}

func post(body any) request {
	return request{method: http.MethodPost, body: body}
}

func patch(body any) request {
	return request{method: http.MethodPatch, body: body}
}

func del() request {
	return request{method: http.MethodDelete}
}

// send performs one backend call and returns the raw response body,
// or nil for an empty body. token, when non-empty, is sent as a bearer
// credential.
//
// Transport timeouts are retried up to the configured attempt count;
// the wait before attempt n is uniform in [0, 2^n) backoff units. Any
// other transport error fails immediately. A non-2xx status is not
// retried either: the backend answered, so resending won't help.
func (c *Client) send(ctx context.Context, path string, req request, token string) (json.RawMessage, error) {
	fullURL := c.baseURL + "/" + path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var body []byte
	if req.body != nil {
		var err error
		body, err = json.Marshal(req.body)
		if err != nil {
			return nil, &RequestError{Kind: KindJSONParse, Err: err}
		}
	}

	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", req.method, "path", path)
	metrics.APIRequests.WithLabelValues(req.method).Inc()

	resp, err := c.retry(ctx, log, req.method, fullURL, body, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIFailures.WithLabelValues(KindTransport.String()).Inc()
		return nil, &RequestError{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("backend returned error status", "status", resp.StatusCode)
		metrics.APIFailures.WithLabelValues(KindStatus.String()).Inc()
		return nil, &RequestError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s %s: status %d", req.method, path, resp.StatusCode),
		}
	}

	// An empty body is a valid answer (e.g. PATCH/DELETE), not a
	// decoding failure.
	if len(respBody) == 0 {
		return nil, nil
	}

	return json.RawMessage(respBody), nil
}

// retry sends the request, resending on transport timeouts until it
// gets a response or runs out of attempts.
func (c *Client) retry(ctx context.Context, log *slog.Logger, method, fullURL string, body []byte, token string) (*http.Response, error) {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := c.do(ctx, method, fullURL, body, token)
		if err == nil {
			return resp, nil
		}

		if !isTimeout(err) {
			metrics.APIFailures.WithLabelValues(KindTransport.String()).Inc()
			return nil, &RequestError{Kind: KindTransport, Err: err}
		}

		log.Warn("request timed out, retrying",
			"attempt", attempt+1, "remaining", c.maxRetries-attempt-1)
		metrics.APIRetries.Inc()

		backoff := time.Duration(rand.Int63n(1<<attempt)) * c.backoffUnit
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			metrics.APIFailures.WithLabelValues(KindTransport.String()).Inc()
			return nil, &RequestError{Kind: KindTransport, Err: ctx.Err()}
		case <-timer.C:
		}
	}

	metrics.APIFailures.WithLabelValues(KindTimeout.String()).Inc()
	return nil, &RequestError{Kind: KindTimeout, Err: context.DeadlineExceeded}
}

func (c *Client) do(ctx context.Context, method, fullURL string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(httpReq)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// decode parses a raw response into T. A nil body yields the zero
// value; that only reaches callers of operations without a payload.
func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		metrics.APIFailures.WithLabelValues(KindJSONParse.String()).Inc()
		return out, &RequestError{Kind: KindJSONParse, Err: err}
	}
	return out, nil
}
