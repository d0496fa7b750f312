// Package api is the typed client for the marketplace REST API. Every
// request goes through one pipeline: rate limit, bearer token, request id,
// circuit breaker, retry on transport/5xx failures, envelope decoding.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token attached to every request. An empty
// token means the request goes out anonymous. Consumers define this
// interface; the session store implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed-token source, mostly for tests.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RateLimit  rate.Limit
	Burst      int
	Tokens     TokenSource
	Logger     *slog.Logger
	Transport  http.RoundTripper
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	tokens     TokenSource
	maxRetries int
	log        *slog.Logger
}

func NewClient(cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = rate.Limit(10)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "marketplace-api",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    breaker,
		tokens:     cfg.Tokens,
		maxRetries: cfg.MaxRetries,
		log:        logger,
	}
}

// envelope is the wrapper every API response arrives in.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	resp, err := c.doWithRetry(ctx, method, target, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// doWithRetry rebuilds the request per attempt and retries transport errors
// and 5xx responses with a linear backoff. An open breaker fails fast.
func (c *Client) doWithRetry(ctx context.Context, method, target string, payload []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := c.newRequest(ctx, method, target, payload)
		if err != nil {
			return nil, err
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			resp, errDo := c.httpClient.Do(req)
			if errDo != nil {
				return nil, errDo
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("server error: %d", resp.StatusCode)
			}
			return resp, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fmt.Errorf("circuit breaker: %w", err)
			}
			c.log.Warn("request attempt failed", "method", method, "url", target, "attempt", attempt, "error", err)
			lastErr = err
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) newRequest(ctx context.Context, method, target string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, errTok := c.tokens.Token(ctx)
		if errTok != nil {
			return nil, fmt.Errorf("resolve token: %w", errTok)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}
