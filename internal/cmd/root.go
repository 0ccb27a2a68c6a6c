// Package cmd implements the apikit command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns an independent
// tree, so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "apikit",
		Short: "Call the users/posts API from the command line",
		Long: `apikit talks to a JSON REST backend exposing users and posts.

Configuration is read from apikit.yaml (., $HOME/.config/apikit or --config)
and APIKIT_* environment variables, e.g. APIKIT_CLIENT_BASE_URL.

Examples:
  apikit mock --seed
  apikit --base-url http://localhost:3000/api users list
  apikit users get 1 2 3
  apikit users create --name "Ada" --email ada@example.com
  apikit overview`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to the config file")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "Override client.base_url")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log.level")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Override log.format (console or json)")

	root.AddCommand(
		newUsersCmd(&flags),
		newPostsCmd(&flags),
		newOverviewCmd(&flags),
		newMockCmd(&flags),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	gin.SetMode(gin.ReleaseMode)
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
