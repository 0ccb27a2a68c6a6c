// Package api exposes the users and posts helpers on top of httpclient.
package api

import (
	"context"

	"github.com/kochabx/apikit/httpclient"
)

// API groups the resource helpers for one backend.
type API struct {
	Users *Resource[User]
	Posts *Resource[Post]
}

// New wires the helpers to f, usually an *httpclient.Client.
func New(f httpclient.Fetcher) *API {
	return &API{
		Users: NewResource[User](f, ResourceUsers),
		Posts: NewResource[Post](f, ResourcePosts),
	}
}

// GetUsers lists users.
func (a *API) GetUsers(ctx context.Context) ([]User, error) {
	return a.Users.List(ctx)
}

// GetUser fetches one user.
func (a *API) GetUser(ctx context.Context, id any) (User, error) {
	return a.Users.Get(ctx, id)
}

// CreateUser posts a new user and returns the server's copy.
func (a *API) CreateUser(ctx context.Context, u User) (User, error) {
	return a.Users.Create(ctx, u)
}

// UpdateUser replaces user id.
func (a *API) UpdateUser(ctx context.Context, id any, u User) (User, error) {
	return a.Users.Update(ctx, id, u)
}

// DeleteUser removes user id and returns whatever the server answered,
// nil for an empty body.
func (a *API) DeleteUser(ctx context.Context, id any) (any, error) {
	return a.Users.Delete(ctx, id)
}

// GetPosts lists posts.
func (a *API) GetPosts(ctx context.Context) ([]Post, error) {
	return a.Posts.List(ctx)
}

// CreatePost posts a new post.
func (a *API) CreatePost(ctx context.Context, p Post) (Post, error) {
	return a.Posts.Create(ctx, p)
}
