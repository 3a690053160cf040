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

func newAnswerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer <yes|no>",
		Short: "Answer the current assessment question",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("answer is required (yes or no)")
			}
			switch strings.ToLower(args[0]) {
			case "yes", "y", "no", "n":
				return nil
			}
			return errors.New("answer must be yes or no")
		},
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
			if sess.Phase != engine.PhaseAssessment {
				return errors.New("the active session is past its assessment")
			}
			q, ok := sess.CurrentQuestion()
			if !ok {
				return errors.New("no question pending; the roadmap may still be generating")
			}

			knows := args[0] == "yes" || args[0] == "y"
			a.svc.AnswerQuestion(ctx, q.Skill, knows)

			out := cmd.OutOrStdout()
			sess, _ = a.svc.Active()
			if next, ok := sess.CurrentQuestion(); ok {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Question %d/%d", sess.QuestionIndex+1, len(sess.Questions))))
				fmt.Fprintln(out, next.Question)
				if next.Context != "" {
					fmt.Fprintln(out, ui.Muted.Render(next.Context))
				}
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconMap, "Assessment complete"))
			fmt.Fprintln(out, ui.Muted.Render("Generating your roadmap…"))
			// cleanup flushes the generation before the process exits.
			a.svc.Flush()
			sess, _ = a.svc.Active()
			if sess != nil && sess.Roadmap != nil && len(sess.Roadmap.Nodes) > 0 {
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("Roadmap ready: %d milestones. Run `wp status` or `wp board`.", len(sess.Roadmap.Nodes))))
			} else {
				fmt.Fprintln(out, ui.Warn.Render("Generation produced no roadmap. Retry with `wp regen` or check your API key."))
			}
			return nil
		},
	}

	return cmd
}
