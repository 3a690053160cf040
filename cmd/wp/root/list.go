package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goal sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sessions := a.svc.Sessions()
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions. Start one with `wp new <goal>`."))
				return nil
			}

			active, _ := a.svc.Active()
			fmt.Fprintln(out, ui.Heading(ui.IconMap, "Sessions"))
			for _, sess := range sessions {
				marker := "  "
				if active != nil && sess.ID == active.ID {
					marker = ui.Gold.Render("* ")
				}
				done, total := sess.Progress()
				progress := ""
				if total > 0 {
					progress = fmt.Sprintf(" %d/%d", done, total)
				}
				forked := ""
				if sess.Provenance != nil {
					forked = " " + ui.IconFork
				}
				fmt.Fprintf(out, "%s%s %s %s%s%s\n",
					marker,
					ui.Key.Render(shortID(sess.ID)),
					sess.Role,
					ui.Muted.Render(string(sess.Phase)),
					progress,
					forked,
				)
			}
			return nil
		},
	}

	return cmd
}

// shortID keeps listings readable; full ids still work everywhere.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
