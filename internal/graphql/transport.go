package graphql

import (
	"context"
	"net"
	"net/http"
	"time"
)

// FetchPolicy decides whether a query may be answered from the cache.
type FetchPolicy int

const (
	CacheFirst FetchPolicy = iota
	NetworkOnly
)

type policyKey struct{}

// WithFetchPolicy attaches a policy to every Query made with ctx.
func WithFetchPolicy(ctx context.Context, p FetchPolicy) context.Context {
	return context.WithValue(ctx, policyKey{}, p)
}

func policyFrom(ctx context.Context) FetchPolicy {
	if p, ok := ctx.Value(policyKey{}).(FetchPolicy); ok {
		return p
	}
	return CacheFirst
}

// NewHTTPClient returns a client tuned for a single API host.
func NewHTTPClient() *http.Client {
	d := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           d.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr}
}
