package cmd

import (
	"context"

	"github.com/spf13/cobra"

	lifecycle "github.com/kochabx/apikit/app"
	"github.com/kochabx/apikit/internal/mockapi"
	"github.com/kochabx/apikit/transport"
)

var seedUsers = []map[string]any{
	{"name": "Leanne Graham", "username": "Bret", "email": "leanne@example.com"},
	{"name": "Ervin Howell", "username": "Antonette", "email": "ervin@example.com"},
}

var seedPosts = []map[string]any{
	{"userId": 1, "title": "hello", "body": "first post"},
	{"userId": 2, "title": "again", "body": "second post"},
}

func newMockCmd(flags *globalFlags) *cobra.Command {
	var (
		addr   string
		prefix string
		seed   bool
	)
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory users/posts backend",
		Long: `Serve an in-memory backend for local development.

Point the client at it with --base-url http://localhost:3000/api.
When metrics are enabled they are served on metrics.addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			backend := mockapi.New(mockapi.WithPrefix(prefix), mockapi.WithLogger(a.logger.Component("mockapi")))
			if seed {
				if err := backend.Seed("users", seedUsers...); err != nil {
					return err
				}
				if err := backend.Seed("posts", seedPosts...); err != nil {
					return err
				}
			}

			servers := []transport.Server{backend.NewServer(addr)}
			if ms := a.metricsServer(); ms != nil {
				servers = append(servers, ms)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return lifecycle.New(
				lifecycle.WithContext(ctx),
				lifecycle.WithLogger(a.logger),
				lifecycle.WithServers(servers...),
				lifecycle.WithClose("logger", func(context.Context) error { return a.logger.Close() }, 0),
			).Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringVar(&prefix, "prefix", "/api", "Route prefix")
	cmd.Flags().BoolVar(&seed, "seed", false, "Insert sample users and posts")
	return cmd
}
