package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kochabx/apikit/api"
)

func newPostsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage posts",
	}
	cmd.AddCommand(newPostsListCmd(flags), newPostsCreateCmd(flags))
	return cmd
}

func newPostsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				posts, err := a.api.GetPosts(ctx)
				if err != nil {
					return a.failed("posts.list", err)
				}
				return a.print(posts)
			})
		},
	}
}

func newPostsCreateCmd(flags *globalFlags) *cobra.Command {
	var p api.Post
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				created, err := a.api.CreatePost(ctx, p)
				if err != nil {
					return a.failed("posts.create", err)
				}
				a.emit(EventPostCreated, created)
				return a.print(created)
			})
		},
	}
	cmd.Flags().Int64Var(&p.UserID, "user-id", 0, "Author id")
	cmd.Flags().StringVar(&p.Title, "title", "", "Title")
	cmd.Flags().StringVar(&p.Body, "body", "", "Body")
	return cmd
}
