package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/apikit/api"
	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/httpclient"
	"github.com/kochabx/apikit/internal/mockapi"
	"github.com/kochabx/apikit/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*api.API, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New(mockapi.WithLogger(log.Nop()))
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := httpclient.New(srv.URL+"/api", httpclient.WithLogger(log.Nop()))
	return api.New(client), backend
}

func TestUsersLifecycle(t *testing.T) {
	ctx := context.Background()
	a, backend := setup(t)

	created, err := a.CreateUser(ctx, api.User{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, 1, backend.Len(api.ResourceUsers))

	got, err := a.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := a.UpdateUser(ctx, created.ID, api.User{Name: "Ada King", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ada King", updated.Name)

	users, err := a.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada King", users[0].Name)

	deleted, err := a.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, deleted)
	assert.Zero(t, backend.Len(api.ResourceUsers))
}

func TestDeleteMissingUser(t *testing.T) {
	a, _ := setup(t)

	res, err := a.DeleteUser(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "not found", err.Error())
	assert.Equal(t, http.StatusNotFound, errors.CodeOf(err))
	assert.True(t, errors.IsKind(err, errors.KindProtocol))
}

func TestGetUserStringID(t *testing.T) {
	a, backend := setup(t)
	require.NoError(t, backend.Seed(api.ResourceUsers, map[string]any{"name": "Grace", "company": "Navy"}))

	u, err := a.GetUser(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, api.User{ID: 1, Name: "Grace"}, u)
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	a, _ := setup(t)

	posts, err := a.GetPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	p, err := a.CreatePost(ctx, api.Post{UserID: 7, Title: "Hello", Body: "world"})
	require.NoError(t, err)
	assert.Equal(t, api.Post{ID: 1, UserID: 7, Title: "Hello", Body: "world"}, p)

	posts, err = a.GetPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []api.Post{p}, posts)
}

type recordingFetcher struct {
	method   string
	endpoint string
	body     any
}

func (r *recordingFetcher) Do(_ context.Context, endpoint string, opts ...func(*httpclient.RequestOption)) error {
	r.endpoint = endpoint
	var opt httpclient.RequestOption
	for _, o := range opts {
		o(&opt)
	}
	r.method = opt.Method()
	r.body = opt.Body()
	return nil
}

func TestHelperRouting(t *testing.T) {
	ctx := context.Background()
	u := api.User{Name: "x"}
	p := api.Post{Title: "t"}

	tests := []struct {
		name     string
		call     func(*api.API) error
		method   string
		endpoint string
		body     any
	}{
		{"GetUsers", func(a *api.API) error { _, err := a.GetUsers(ctx); return err }, "", "users", nil},
		{"GetUser", func(a *api.API) error { _, err := a.GetUser(ctx, 3); return err }, "", "users/3", nil},
		{"CreateUser", func(a *api.API) error { _, err := a.CreateUser(ctx, u); return err }, http.MethodPost, "users", u},
		{"UpdateUser", func(a *api.API) error { _, err := a.UpdateUser(ctx, "abc", u); return err }, http.MethodPut, "users/abc", u},
		{"DeleteUser", func(a *api.API) error { _, err := a.DeleteUser(ctx, 9); return err }, http.MethodDelete, "users/9", nil},
		{"GetPosts", func(a *api.API) error { _, err := a.GetPosts(ctx); return err }, "", "posts", nil},
		{"CreatePost", func(a *api.API) error { _, err := a.CreatePost(ctx, p); return err }, http.MethodPost, "posts", p},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &recordingFetcher{}
			require.NoError(t, tt.call(api.New(f)))
			assert.Equal(t, tt.method, f.method)
			assert.Equal(t, tt.endpoint, f.endpoint)
			assert.Equal(t, tt.body, f.body)
		})
	}
}
