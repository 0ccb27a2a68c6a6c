package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kochabx/apikit/core/util/id"
	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log"
)

const (
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB
)

// Client calls endpoints relative to a single base URL and reports every
// failure as a *RequestError after logging it.
type Client struct {
	client         *http.Client
	baseURL        string
	header         http.Header
	timeout        time.Duration
	logger         *log.Logger
	observer       Observer
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

// New creates a client for baseURL. A trailing slash on baseURL is dropped
// so that endpoints are always joined with exactly one "/".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		header:  http.Header{HeaderContentType: []string{ContentTypeJSON}},
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized base URL.
func (cli *Client) BaseURL() string {
	return cli.baseURL
}

// URL returns the full URL for endpoint.
func (cli *Client) URL(endpoint string) string {
	return cli.baseURL + "/" + endpoint
}

// Fetch performs the call and returns the decoded JSON body as produced by
// encoding/json for an `any` target. An empty 2xx body yields nil.
func (cli *Client) Fetch(ctx context.Context, endpoint string, opts ...func(*RequestOption)) (any, error) {
	var out any
	if err := cli.Do(ctx, endpoint, append(opts[:len(opts):len(opts)], WithResult(&out))...); err != nil {
		return nil, err
	}
	return out, nil
}

// Do performs the call, decoding a 2xx body into the WithResult target.
func (cli *Client) Do(ctx context.Context, endpoint string, opts ...func(*RequestOption)) (err error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	start := time.Now()
	status := 0
	header := cli.mergeHeaders(opt.header)
	requestID := header.Get(HeaderRequestID)

	defer func() {
		if cli.observer != nil {
			cli.observer.ObserveRequest(opt.method, endpoint, status, time.Since(start), err)
		}
	}()

	fail := func(e *errors.Error) error {
		return cli.fail(e, opt.method, endpoint, requestID, time.Since(start))
	}

	if endpoint == "" {
		return fail(errors.Newk(errors.KindInvalid, errors.UnknownCode, "endpoint is required"))
	}

	if cli.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cli.timeout)
		defer cancel()
	}

	req, err := cli.createRequest(ctx, opt.method, cli.URL(endpoint), opt.body)
	if err != nil {
		e := errors.FromError(err)
		if e.Kind() == errors.KindUnknown {
			e = e.WithKind(errors.KindInvalid)
		}
		return fail(e)
	}
	req.Header = header
	// net/http sends req.Host and ignores a Host entry in the header map.
	if host := header.Get("Host"); host != "" {
		req.Host = host
	}

	resp, err := cli.client.Do(req)
	if err != nil {
		return fail(errors.Newk(errors.KindTransport, errors.UnknownCode, "%v", err).WithCause(err))
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(errors.Newk(errors.KindTransport, status, "%v", err).WithCause(err))
	}

	if status < 200 || status >= 300 {
		msg, ok := messageFromBody(body)
		if !ok {
			msg = statusMessage(status)
		}
		return fail(errors.Newk(errors.KindProtocol, status, "%s", msg))
	}

	return cli.processResponse(body, opt.result, status, fail)
}

// mergeHeaders layers per-call headers over the client defaults.
// Keys collide by canonical header name; the caller wins.
func (cli *Client) mergeHeaders(callHeader map[string]string) http.Header {
	h := cli.header.Clone()
	for k, v := range callHeader {
		h.Set(k, v)
	}
	if h.Get(HeaderRequestID) == "" {
		h.Set(HeaderRequestID, id.RequestID())
	}
	return h
}

// createRequest creates an HTTP request with the appropriate body
func (cli *Client) createRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequestWithContext(ctx, method, url, nil)
	case io.Reader:
		return http.NewRequestWithContext(ctx, method, url, v)
	case []byte:
		return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(v))
	default:
		payload, err := cli.encodeJSON(v)
		if err != nil {
			return nil, errors.Newk(errors.KindEncode, errors.UnknownCode, "encode request body: %v", err).WithCause(err)
		}
		return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	}
}

// encodeJSON encodes through a pooled buffer and returns an owned copy.
func (cli *Client) encodeJSON(v any) ([]byte, error) {
	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.Clone(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// processResponse decodes a successful body into dest.
func (cli *Client) processResponse(body []byte, dest any, status int, fail func(*errors.Error) error) error {
	if dest == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fail(errors.Newk(errors.KindDecode, status, "decode response body: %v", err).WithCause(err))
	}

	return nil
}

// fail logs the error with call metadata and returns it. It is the only
// place failures leave the client, so each is logged exactly once.
func (cli *Client) fail(e *errors.Error, method, endpoint, requestID string, elapsed time.Duration) error {
	e = e.WithMetadata(map[string]string{
		errors.MetaMethod:    method,
		errors.MetaEndpoint:  endpoint,
		errors.MetaRequestID: requestID,
	})

	event := cli.log().Error().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Str("kind", e.Kind().String()).
		Dur("duration", elapsed)
	if e.Code != errors.UnknownCode {
		event = event.Int("status", e.Code)
	}
	if cause := e.GetCause(); cause != nil {
		event = event.AnErr("cause", cause)
	}
	event.Err(e).Msg("api request failed")

	return e
}

func (cli *Client) log() *log.Logger {
	if cli.logger != nil {
		return cli.logger
	}
	return log.G
}

// getRequestOption retrieves a RequestOption from the pool
func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset()
	return opt
}

// putRequestOption returns a RequestOption to the pool
func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

// getBuffer retrieves a buffer from the pool
func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool unless it grew too large
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

// Fetch is the typed form of Client.Fetch: the body is decoded into T.
func Fetch[T any](ctx context.Context, f Fetcher, endpoint string, opts ...func(*RequestOption)) (T, error) {
	var out T
	err := f.Do(ctx, endpoint, append(opts[:len(opts):len(opts)], WithResult(&out))...)
	return out, err
}
