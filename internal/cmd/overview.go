package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kochabx/apikit/api"
)

// Overview is printed by `apikit overview`.
type Overview struct {
	UserCount int        `json:"userCount"`
	PostCount int        `json:"postCount"`
	Users     []api.User `json:"users"`
	Posts     []api.Post `json:"posts"`
}

func newOverviewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Fetch users and posts concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				ov, err := overview(ctx, a)
				if err != nil {
					return err
				}
				return a.print(ov)
			})
		},
	}
}

func overview(ctx context.Context, a *app) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := a.api.GetUsers(ctx)
		if err != nil {
			return a.failed("users.list", err)
		}
		ov.Users = users
		return nil
	})
	g.Go(func() error {
		posts, err := a.api.GetPosts(ctx)
		if err != nil {
			return a.failed("posts.list", err)
		}
		ov.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	ov.UserCount = len(ov.Users)
	ov.PostCount = len(ov.Posts)
	return &ov, nil
}
