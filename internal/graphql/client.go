// Package graphql is a small GraphQL-over-HTTP client with a response cache.
//
// Responses are cached per (operation, document, variables) in an LRU. The
// default fetch policy is cache-first; callers can force a network round trip
// with WithFetchPolicy. Identical requests in flight share one HTTP call.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheSize = 128
	maxResponseBytes = 8 << 20
)

// Request is the JSON body POSTed to the endpoint.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Client talks to one GraphQL endpoint. It is safe for concurrent use.
type Client struct {
	endpoint  string
	http      *http.Client
	header    http.Header
	timeout   time.Duration
	cacheSize int
	cache     *lru.Cache[string, json.RawMessage]
	group     singleflight.Group
	logger    *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each HTTP round trip. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithCacheSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// WithHeader adds a header to every request, e.g. Authorization.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.header.Set(key, value)
		}
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	c := &Client{
		endpoint:  endpoint,
		header:    http.Header{},
		cacheSize: defaultCacheSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = NewHTTPClient()
	}
	cache, err := lru.New[string, json.RawMessage](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("graphql: cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

// Query runs req and decodes its "data" object into out.
func (c *Client) Query(ctx context.Context, req Request, out any) error {
	key, err := cacheKey(req)
	if err != nil {
		return err
	}
	log := c.logger.With(zap.String("operation", req.OperationName))

	if policyFrom(ctx) == CacheFirst {
		if data, ok := c.cache.Get(key); ok {
			log.Debug("graphql cache hit")
			return decode(data, out)
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetch(ctx, key, req)
	})
	var data json.RawMessage
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			// A shared call can die with the context of whoever started it.
			if res.Shared && isContextErr(res.Err) && ctx.Err() == nil {
				log.Debug("graphql shared call cancelled, retrying")
				data, err = c.fetch(ctx, key, req)
				if err != nil {
					return err
				}
				break
			}
			return res.Err
		}
		data = res.Val.(json.RawMessage)
	}
	return decode(data, out)
}

func (c *Client) fetch(ctx context.Context, key string, req Request) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	httpReq.Header = c.header.Clone()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(
		zap.String("operation", req.OperationName),
		zap.String("request_id", requestID),
	)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("graphql request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("graphql: %s: %w", req.OperationName, err)
	}
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("graphql: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("graphql non-200", zap.Int("status", resp.StatusCode))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gr response
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("graphql: parse response: %w", err)
	}
	if len(gr.Errors) > 0 {
		log.Warn("graphql errors", zap.Int("count", len(gr.Errors)), zap.Error(gr.Errors))
		return nil, gr.Errors
	}
	if len(gr.Data) == 0 || bytes.Equal(gr.Data, []byte("null")) {
		return nil, ErrNoData
	}

	c.cache.Add(key, gr.Data)
	log.Debug("graphql ok",
		zap.Int("bytes", len(respBody)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("cached", c.cache.Len()),
	)
	return gr.Data, nil
}

func cacheKey(req Request) (string, error) {
	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return "", fmt.Errorf("graphql: marshal variables: %w", err)
	}
	return req.OperationName + "\x00" + req.Query + "\x00" + string(vars), nil
}

func decode(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
