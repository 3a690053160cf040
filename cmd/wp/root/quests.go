package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show today's quests across all goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests := a.svc.DailyQuests()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Daily quests"))
			if len(quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing today. Generate a roadmap first (`wp new`, then answer the assessment)."))
				return nil
			}
			for i, q := range quests {
				fmt.Fprintf(out, "%s %s %s\n",
					ui.Key.Render(fmt.Sprintf("%d.", i+1)),
					q.Title,
					ui.Muted.Render(fmt.Sprintf("(%s · %s)", q.Goal, shortID(q.SessionID))),
				)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render("Complete one with `wp done --quest N`."))
			return nil
		},
	}

	return cmd
}
