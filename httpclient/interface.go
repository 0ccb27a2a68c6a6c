package httpclient

import (
	"context"
	"time"
)

// Fetcher performs one call against an endpoint relative to the base URL.
type Fetcher interface {
	Do(ctx context.Context, endpoint string, opts ...func(*RequestOption)) error
}

// Observer is notified once per call, after the outcome is known.
// status is 0 when no response was received.
type Observer interface {
	ObserveRequest(method, endpoint string, status int, elapsed time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(method, endpoint string, status int, elapsed time.Duration, err error)

func (f ObserverFunc) ObserveRequest(method, endpoint string, status int, elapsed time.Duration, err error) {
	f(method, endpoint, status, elapsed, err)
}

var _ Fetcher = (*Client)(nil)
