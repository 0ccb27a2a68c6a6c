package httpclient

import (
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/kochabx/apikit/log"
)

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout bounds every call. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver registers an Observer for every call.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithDefaultHeader adds client-wide headers. They sit between the
// built-in Content-Type and per-call headers.
func WithDefaultHeader(header map[string]string) Option {
	return func(c *Client) {
		for k, v := range header {
			c.header.Set(k, v)
		}
	}
}

// RequestOption holds options for a single call.
type RequestOption struct {
	method string
	header map[string]string
	body   any
	result any
}

// WithMethod sets the HTTP verb. Defaults to GET.
func WithMethod(method string) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.method = strings.ToUpper(method)
	}
}

// WithHeader merges header into the call's headers; later values win.
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		if opt.header == nil {
			opt.header = make(map[string]string, len(header))
		}
		maps.Copy(opt.header, header)
	}
}

// WithBody sets the request body. Values other than io.Reader and []byte
// are JSON-encoded.
func WithBody(body any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.body = body
	}
}

// WithRawBody sends r unmodified.
func WithRawBody(r io.Reader) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.body = r
	}
}

// WithResult sets the destination a 2xx JSON body is decoded into.
func WithResult(dst any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.result = dst
	}
}

// Method returns the configured verb; empty means GET.
func (opt *RequestOption) Method() string { return opt.method }

// Header returns the per-call headers.
func (opt *RequestOption) Header() map[string]string { return opt.header }

// Body returns the value set by WithBody or WithRawBody.
func (opt *RequestOption) Body() any { return opt.body }

// Result returns the decode destination.
func (opt *RequestOption) Result() any { return opt.result }

// reset clears the option for reuse from the pool
func (opt *RequestOption) reset() {
	opt.method = http.MethodGet
	clear(opt.header)
	opt.body = nil
	opt.result = nil
}
