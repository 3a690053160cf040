package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <session>",
		Short: "Switch the active session",
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
			a.svc.SwitchSession(ctx, sess.ID)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Active session", fmt.Sprintf("%s (%s)", shortID(sess.ID), sess.Role)))
			return nil
		},
	}

	return cmd
}
