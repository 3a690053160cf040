package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newNewCmd() *cobra.Command {
	var role string
	var deadline string

	cmd := &cobra.Command{
		Use:   "new <goal...>",
		Short: "Start a new goal session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("goal text is required")
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

			goal := strings.Join(args, " ")
			if role == "" {
				analysis, err := a.gen.ParseGoal(ctx, goal)
				if err != nil {
					return fmt.Errorf("analyze goal: %w", err)
				}
				if !analysis.Valid {
					return errors.New("could not map that goal to a role; try rephrasing or pass --role")
				}
				role = analysis.Role
			}

			id := a.svc.CreateSession(ctx, goal, role, deadline)

			questions, err := a.gen.GenerateQuestions(ctx, role)
			if err != nil {
				return fmt.Errorf("generate assessment: %w", err)
			}
			a.svc.SetQuestions(ctx, questions)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "New session"))
			fmt.Fprintln(out, ui.LabelValue("ID", id))
			fmt.Fprintln(out, ui.LabelValue("Role", role))
			if deadline != "" {
				fmt.Fprintln(out, ui.LabelValue("Deadline", deadline))
			}
			fmt.Fprintln(out, "")

			sess, ok := a.svc.Active()
			if !ok {
				return nil
			}
			if q, ok := sess.CurrentQuestion(); ok {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Question 1/%d", len(sess.Questions))))
				fmt.Fprintln(out, q.Question)
				if q.Context != "" {
					fmt.Fprintln(out, ui.Muted.Render(q.Context))
				}
				fmt.Fprintln(out, ui.Muted.Render("Answer with `wp answer yes` or `wp answer no`."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Skip goal analysis and use this role")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Optional target date (free-form)")

	return cmd
}
