package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"asteroid-watch/backend-go/internal/config"
	"asteroid-watch/backend-go/internal/metrics"
)

const maxBodyBytes = 32 << 20

var ErrCircuitOpen = errors.New("neows circuit breaker open")

// UpstreamError is a non-2xx answer from NeoWs.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("neows api: %d %s", e.Status, http.StatusText(e.Status))
}

// DecodeError means NeoWs answered 2xx with a body that is not JSON.
type DecodeError struct {
	Endpoint string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("neows %s: response is not valid json", e.Endpoint)
}

// IsTimeout reports whether err came from an expired deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// circuitBreaker with a zero threshold never opens.
type circuitBreaker struct {
	mu        sync.Mutex
	failures  int
	threshold int
	openedAt  time.Time
	cooldown  time.Duration
}

func newCircuitBreaker(threshold int, cooldown time.Duration) *circuitBreaker {
	if threshold < 0 {
		threshold = 0
	}
	return &circuitBreaker{threshold: threshold, cooldown: cooldown}
}

func (c *circuitBreaker) allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.threshold == 0 || c.failures < c.threshold {
		return true
	}
	if time.Since(c.openedAt) > c.cooldown {
		c.failures = 0
		c.openedAt = time.Time{}
		return true
	}
	return false
}

func (c *circuitBreaker) success() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.openedAt = time.Time{}
}

func (c *circuitBreaker) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.threshold == 0 {
		return
	}
	c.failures++
	if c.failures >= c.threshold {
		c.openedAt = time.Now()
	}
}

// NeoWsClient talks to the NASA Near Earth Object Web Service.
type NeoWsClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	cb      *circuitBreaker
	rec     *metrics.Recorder
}

func NewNeoWsClient(cfg config.Config, rec *metrics.Recorder) *NeoWsClient {
	return &NeoWsClient{
		baseURL: strings.TrimRight(cfg.NeoBaseURL, "/"),
		apiKey:  cfg.NasaAPIKey,
		hc: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cb:  newCircuitBreaker(cfg.CircuitFailLimit, cfg.CircuitCooldown),
		rec: rec,
	}
}

// Feed returns the raw detailed feed body for [start, end].
func (c *NeoWsClient) Feed(ctx context.Context, start, end string) ([]byte, error) {
	q := url.Values{}
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("detailed", "true")
	return c.get(ctx, "feed", "/feed", q)
}

// Lookup returns the raw body for a single asteroid.
func (c *NeoWsClient) Lookup(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "lookup", "/neo/"+url.PathEscape(id), url.Values{})
}

// Health checks that NeoWs answers. It bypasses the circuit breaker.
func (c *NeoWsClient) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, "/stats", url.Values{})
	if err != nil {
		return err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return redact(err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	if res.StatusCode >= 300 {
		return &UpstreamError{Status: res.StatusCode}
	}
	return nil
}

func (c *NeoWsClient) get(ctx context.Context, endpoint, path string, q url.Values) ([]byte, error) {
	if !c.cb.allow() {
		c.rec.RecordUpstream(endpoint, "circuit_open")
		return nil, ErrCircuitOpen
	}
	req, err := c.newRequest(ctx, path, q)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		err = redact(err)
		c.cb.fail()
		if IsTimeout(err) {
			c.rec.RecordUpstream(endpoint, "timeout")
		} else {
			c.rec.RecordUpstream(endpoint, "network_error")
		}
		return nil, fmt.Errorf("neows %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		if res.StatusCode >= 500 {
			c.cb.fail()
		} else {
			c.cb.success()
		}
		c.rec.RecordUpstream(endpoint, fmt.Sprintf("status_%dxx", res.StatusCode/100))
		return nil, &UpstreamError{Status: res.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		err = redact(err)
		c.cb.fail()
		c.rec.RecordUpstream(endpoint, "read_error")
		return nil, fmt.Errorf("neows %s: read body: %w", endpoint, err)
	}
	c.cb.success()
	if !json.Valid(body) {
		c.rec.RecordUpstream(endpoint, "invalid_json")
		return nil, &DecodeError{Endpoint: endpoint}
	}
	c.rec.RecordUpstream(endpoint, "ok")
	return body, nil
}

func (c *NeoWsClient) newRequest(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// redact drops the request URL from transport errors; it carries the API key.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
