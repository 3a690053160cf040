package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <session>",
		Short: "Delete a session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("session id is required")
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

			sess, err := a.resolveSession(args[0])
			if err != nil {
				return err
			}
			a.svc.DeleteSession(ctx, sess.ID)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Deleted %s (%s).", shortID(sess.ID), sess.Role)))
			return nil
		},
	}

	return cmd
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the active session pointer",
		Long:  "Clears which session is active without deleting anything. The next `wp use` or `wp new` picks the active session again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a.svc.Reset(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Active session cleared."))
			return nil
		},
	}

	return cmd
}
