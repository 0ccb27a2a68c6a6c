package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kochabx/apikit/httpclient"
)

// Resource binds a collection path to a record type T. Every method is a
// fixed specialization of a single Fetcher call; ids are not validated.
type Resource[T any] struct {
	f    httpclient.Fetcher
	path string
}

// NewResource creates a Resource for path.
func NewResource[T any](f httpclient.Fetcher, path string) *Resource[T] {
	return &Resource[T]{f: f, path: path}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) item(id any) string {
	return r.path + "/" + fmt.Sprint(id)
}

// List fetches GET {path}.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return httpclient.Fetch[[]T](ctx, r.f, r.path)
}

// Get fetches GET {path}/{id}.
func (r *Resource[T]) Get(ctx context.Context, id any) (T, error) {
	return httpclient.Fetch[T](ctx, r.f, r.item(id))
}

// Create sends POST {path} with in as the JSON body.
func (r *Resource[T]) Create(ctx context.Context, in T) (T, error) {
	return httpclient.Fetch[T](ctx, r.f, r.path,
		httpclient.WithMethod(http.MethodPost),
		httpclient.WithBody(in),
	)
}

// Update sends PUT {path}/{id} with in as the JSON body.
func (r *Resource[T]) Update(ctx context.Context, id any, in T) (T, error) {
	return httpclient.Fetch[T](ctx, r.f, r.item(id),
		httpclient.WithMethod(http.MethodPut),
		httpclient.WithBody(in),
	)
}

// Delete sends DELETE {path}/{id} and returns the decoded body, if any.
func (r *Resource[T]) Delete(ctx context.Context, id any) (any, error) {
	return httpclient.Fetch[any](ctx, r.f, r.item(id),
		httpclient.WithMethod(http.MethodDelete),
	)
}
