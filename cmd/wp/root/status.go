package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/engine"
	"waypoint/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session's roadmap and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, ok := a.svc.Active()
			if !ok {
				return errors.New("no active session; run `wp new` first")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.PhaseIcon(string(sess.Phase)), sess.Role))
			fmt.Fprintln(out, ui.LabelValue("Session", shortID(sess.ID)))
			fmt.Fprintln(out, ui.LabelValue("Goal", sess.Goal))
			if sess.Deadline != "" {
				fmt.Fprintln(out, ui.LabelValue("Deadline", sess.Deadline))
			}
			if sess.Provenance != nil && sess.Provenance.Forked {
				fmt.Fprintln(out, ui.LabelValue("Forked from", sess.Provenance.OriginalAuthorID))
			}
			fmt.Fprintln(out, ui.StreakText(sess.Streak))
			fmt.Fprintln(out, "")

			if sess.Phase == engine.PhaseAssessment {
				if q, ok := sess.CurrentQuestion(); ok {
					fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Assessment: question %d/%d", sess.QuestionIndex+1, len(sess.Questions))))
					fmt.Fprintln(out, q.Question)
				} else {
					fmt.Fprintln(out, ui.Muted.Render("Assessment pending."))
				}
				return nil
			}

			if sess.Roadmap == nil || len(sess.Roadmap.Nodes) == 0 {
				fmt.Fprintln(out, ui.Warn.Render("Roadmap not generated yet. Try `wp regen`."))
				return nil
			}

			done, total := sess.Progress()
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Roadmap (%d/%d tasks)", done, total)))
			for _, n := range sess.Roadmap.Nodes {
				fmt.Fprintf(out, "%s %s %s\n", nodeGlyph(n.Status), n.Title, ui.StatusText(string(n.Status)))
				if n.Status == engine.NodeLocked {
					continue
				}
				for _, sn := range n.SubNodes {
					fmt.Fprintf(out, "  %s %s\n", ui.Muted.Render(sn.ID), sn.Title)
					for k, t := range sn.Tasks {
						mark := "[ ]"
						if t.Completed {
							mark = ui.Good.Render("[x]")
						}
						fmt.Fprintf(out, "    %s %d. %s\n", mark, k, t.Title)
					}
				}
			}

			if _, prompt := a.svc.EngagementInfo(); prompt {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render("Tip: `wp login` keeps your progress under your account."))
			}
			return nil
		},
	}

	return cmd
}

func nodeGlyph(status engine.NodeStatus) string {
	switch status {
	case engine.NodeCompleted:
		return ui.IconDone
	case engine.NodeActive:
		return ui.IconTarget
	default:
		return ui.IconLock
	}
}
