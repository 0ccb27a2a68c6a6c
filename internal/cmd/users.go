package cmd

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/kochabx/apikit/api"
	"github.com/kochabx/apikit/errors"
)

// maxFanout caps concurrent lookups for `users get` with many ids.
const maxFanout = 8

func newUsersCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newUsersListCmd(flags),
		newUsersGetCmd(flags),
		newUsersCreateCmd(flags),
		newUsersUpdateCmd(flags),
		newUsersDeleteCmd(flags),
	)
	return cmd
}

func newUsersListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				users, err := a.api.GetUsers(ctx)
				if err != nil {
					return a.failed("users.list", err)
				}
				return a.print(users)
			})
		},
	}
}

func newUsersGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>...",
		Short: "Fetch one or more users",
		Long:  "Fetch users by id. Several ids are fetched concurrently and printed in argument order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				if len(args) == 1 {
					u, err := a.api.GetUser(ctx, args[0])
					if err != nil {
						return a.failed("users.get", err)
					}
					return a.print(u)
				}
				users, err := getUsers(ctx, a, args)
				if err != nil {
					return err
				}
				return a.print(users)
			})
		},
	}
}

// getUsers fetches ids through an ants pool. Results keep argument order;
// every failure is reported and the first one is returned.
func getUsers(ctx context.Context, a *app, ids []string) ([]api.User, error) {
	pool, err := ants.NewPool(min(len(ids), maxFanout))
	if err != nil {
		return nil, errors.Wrap(err, errors.UnknownCode, "create worker pool")
	}
	defer pool.Release()

	users := make([]api.User, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			users[i], errs[i] = a.api.GetUser(ctx, id)
		})
		if err != nil {
			wg.Done()
			errs[i] = errors.Wrap(err, errors.UnknownCode, "submit user lookup")
		}
	}
	wg.Wait()

	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		a.failed("users.get", err)
		if first == nil {
			first = err
		}
	}
	if first != nil {
		return nil, first
	}
	return users, nil
}

type userFlags struct {
	name, username, email, phone, website string
}

func (f *userFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.username, "username", "", "Username")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.website, "website", "", "Website")
}

func (f *userFlags) user() api.User {
	return api.User{
		Name:     f.name,
		Username: f.username,
		Email:    f.email,
		Phone:    f.phone,
		Website:  f.website,
	}
}

func newUsersCreateCmd(flags *globalFlags) *cobra.Command {
	var uf userFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				u, err := a.api.CreateUser(ctx, uf.user())
				if err != nil {
					return a.failed("users.create", err)
				}
				a.emit(EventUserCreated, u)
				return a.print(u)
			})
		},
	}
	uf.bind(cmd)
	return cmd
}

func newUsersUpdateCmd(flags *globalFlags) *cobra.Command {
	var uf userFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				u, err := a.api.UpdateUser(ctx, args[0], uf.user())
				if err != nil {
					return a.failed("users.update", err)
				}
				a.emit(EventUserUpdated, u)
				return a.print(u)
			})
		},
	}
	uf.bind(cmd)
	return cmd
}

func newUsersDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				res, err := a.api.DeleteUser(ctx, args[0])
				if err != nil {
					return a.failed("users.delete", err)
				}
				a.emit(EventUserDeleted, map[string]any{"id": args[0]})
				return a.print(map[string]any{"deleted": args[0], "response": res})
			})
		},
	}
}
