package feed

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
)

const userAgent = "gtfsrt-led-board/1.0"

// Source describes one upstream GTFS-RT endpoint.
type Source struct {
	Name string
	URL  string
}

// Request is one planned fetch for the current cycle. Validator tokens are
// carried along so the server can answer 304 Not Modified.
type Request struct {
	Source       int // index into the source list
	URL          string
	ETag         string
	LastModified string
}

// Result is the outcome of one fetch attempt. Exactly one of Body,
// NotModified or Err is meaningful. StatusCode is zero when no HTTP response
// was received at all, which marks a transport-level failure.
type Result struct {
	Source       int
	Body         []byte
	NotModified  bool
	ETag         string
	LastModified string
	StatusCode   int
	Err          error
}

// Strategy fetches all planned requests for one cycle concurrently. One
// source failing must not delay or fail any other source.
type Strategy interface {
	FetchAll(ctx context.Context, reqs []Request) []Result
	Name() string
}

// Options configures a fetch strategy.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	APIKey         string
}

type httpStrategy struct {
	name        string
	client      *http.Client
	readTimeout time.Duration
	apiKey      string
}

// NewHTTP2Strategy builds the preferred fetch strategy: a dedicated HTTP/2
// client, multiplexing all feed requests over shared connections.
func NewHTTP2Strategy(opts Options) Strategy {
	transport := &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, cfg *tls.Config) (net.Conn, error) {
			d := &tls.Dialer{
				NetDialer: &net.Dialer{Timeout: opts.ConnectTimeout},
				Config:    cfg,
			}
			return d.DialContext(ctx, network, addr)
		},
	}
	return &httpStrategy{
		name:        "http2",
		client:      &http.Client{Transport: transport},
		readTimeout: opts.ReadTimeout,
		apiKey:      opts.APIKey,
	}
}

// NewHTTP1Strategy builds the fallback strategy on the standard HTTP/1.1
// transport.
func NewHTTP1Strategy(opts Options) Strategy {
	transport := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		MaxIdleConnsPerHost: 16,
	}
	return &httpStrategy{
		name:        "http1",
		client:      &http.Client{Transport: transport},
		readTimeout: opts.ReadTimeout,
		apiKey:      opts.APIKey,
	}
}

func (s *httpStrategy) Name() string { return s.name }

// FetchAll runs every request in its own goroutine and waits for all of
// them. Results are positionally aligned with reqs, independent of
// completion order.
func (s *httpStrategy) FetchAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			results[i] = s.fetchOne(ctx, req)
		}(i, req)
	}
	wg.Wait()
	return results
}

func (s *httpStrategy) fetchOne(ctx context.Context, req Request) Result {
	res := Result{Source: req.Source}

	if s.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		res.Err = fmt.Errorf("build request for %s: %w", req.URL, err)
		return res
	}
	httpReq.Header.Set("User-Agent", userAgent)
	if s.apiKey != "" {
		httpReq.Header.Set("x-api-key", s.apiKey)
	}
	if req.ETag != "" {
		httpReq.Header.Set("If-None-Match", req.ETag)
	}
	if req.LastModified != "" {
		httpReq.Header.Set("If-Modified-Since", req.LastModified)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		res.Err = fmt.Errorf("fetch %s: %w", req.URL, err)
		return res
	}
	defer func() { _ = resp.Body.Close() }()
	res.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode == http.StatusNotModified:
		res.NotModified = true
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			res.Err = fmt.Errorf("read body from %s: %w", req.URL, err)
			return res
		}
		res.Body = body
		res.ETag = resp.Header.Get("ETag")
		res.LastModified = resp.Header.Get("Last-Modified")
	default:
		res.Err = fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL)
	}
	return res
}

// AllTransportFailures reports whether every attempted fetch failed before
// receiving an HTTP response. The driver treats this as a systemic strategy
// failure and switches to the fallback strategy.
func AllTransportFailures(results []Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Err == nil || r.StatusCode != 0 {
			return false
		}
	}
	return true
}
