package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"waypoint/internal/engine"
	"waypoint/internal/ui"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <user-id> [name...]",
		Short: "Attach your progress to a user account",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("user id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u := engine.User{ID: args[0], Name: strings.Join(args[1:], " ")}
			a.svc.Login(ctx, u)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Logged in as "+u.ID+"."))
			return nil
		},
	}

	return cmd
}

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Return to guest mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a.svc.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Logged out. Progress stays on this machine."))
			return nil
		},
	}

	return cmd
}
