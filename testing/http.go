// Package testing holds helpers shared by package tests.
package testing

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// routerTripper serves files registered per URL and records the URLs it
// served.
type routerTripper struct {
	t       testing.TB
	routes  map[string]string
	headers map[string]http.Header

	mu   sync.Mutex
	hits map[string]int
}

func (m *routerTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	rr := httptest.NewRecorder()

	file, ok := m.routes[u]
	if !ok || req.Method != http.MethodGet {
		m.t.Errorf("unexpected http request: %v %v", req.Method, u)
		rr.WriteHeader(http.StatusNotFound)
		res := rr.Result()
		res.Request = req
		return res, nil
	}

	m.mu.Lock()
	m.hits[u]++
	m.mu.Unlock()

	rr.Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
	for k, vs := range m.headers[u] {
		for _, v := range vs {
			rr.Header().Add(k, v)
		}
	}
	http.ServeFile(rr, req, file)

	res := rr.Result()
	res.Request = req
	return res, nil
}

type mockOptions struct {
	ignoreUntouchedURLs bool
	headers             map[string]http.Header
}

type MockHTTPClientOption func(*mockOptions)

// IgnoreUntouchedURLs disables the check that every route was requested.
func IgnoreUntouchedURLs() MockHTTPClientOption {
	return func(opts *mockOptions) {
		opts.ignoreUntouchedURLs = true
	}
}

// WithResponseHeader adds a header to the responses served for u.
func WithResponseHeader(u, key, value string) MockHTTPClientOption {
	return func(opts *mockOptions) {
		if opts.headers[u] == nil {
			opts.headers[u] = make(http.Header)
		}
		opts.headers[u].Add(key, value)
	}
}

// MockHTTPClient replaces http.DefaultTransport with one serving the local
// files in routes, keyed by URL. The returned function restores the
// transport and returns the number of requests served per URL.
func MockHTTPClient(t testing.TB, routes map[string]string,
	opts ...MockHTTPClientOption) func() map[string]int {

	op := mockOptions{headers: make(map[string]http.Header)}
	for _, o := range opts {
		o(&op)
	}

	old := http.DefaultTransport
	transport := &routerTripper{
		t:       t,
		routes:  routes,
		headers: op.headers,
		hits:    make(map[string]int),
	}
	http.DefaultTransport = transport

	return func() map[string]int {
		http.DefaultTransport = old

		transport.mu.Lock()
		defer transport.mu.Unlock()
		if !op.ignoreUntouchedURLs {
			for u := range routes {
				assert.Greater(t, transport.hits[u], 0,
					"found a URL in routes that we did not touch: %v", u)
			}
		}
		return transport.hits
	}
}
