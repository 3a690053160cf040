package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [session]",
		Short: "Publish a session's roadmap to the exchange",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var sessionID string
			if len(args) == 1 {
				sess, err := a.resolveSession(args[0])
				if err != nil {
					return err
				}
				sessionID = sess.ID
			} else {
				sess, ok := a.svc.Active()
				if !ok {
					return errors.New("no active session")
				}
				sessionID = sess.ID
			}

			bp, err := a.svc.PublishSession(ctx, sessionID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGlobe, "Published"))
			fmt.Fprintln(out, ui.LabelValue("Blueprint", bp.ID))
			fmt.Fprintln(out, ui.LabelValue("Role", bp.Role))
			return nil
		},
	}

	return cmd
}

func newUnpublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpublish <blueprint-id>",
		Short: "Remove a blueprint from the exchange",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("blueprint id is required")
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

			if err := a.svc.UnpublishBlueprint(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Blueprint removed."))
			return nil
		},
	}

	return cmd
}
