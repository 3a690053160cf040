package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newRegenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Regenerate the active session's roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, ok := a.svc.Active()
			if !ok {
				return errors.New("no active session")
			}
			if err := a.svc.RegenerateRoadmap(ctx, sess.ID); err != nil {
				return err
			}
			a.svc.Flush()

			sess, _ = a.svc.Active()
			if sess != nil && sess.Roadmap != nil && len(sess.Roadmap.Nodes) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Roadmap regenerated: %d milestones.", len(sess.Roadmap.Nodes))))
				return nil
			}
			return errors.New("regeneration produced no roadmap")
		},
	}

	return cmd
}
