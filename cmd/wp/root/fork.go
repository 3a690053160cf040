package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newForkCmd() *cobra.Command {
	var personalize bool

	cmd := &cobra.Command{
		Use:   "fork <blueprint-id>",
		Short: "Fork a published blueprint into a new session",
		Long:  "Copies a published roadmap into a session of your own. With --personalize the roadmap is discarded and you take the assessment for that role instead, so the generated roadmap fits your actual skill gaps.",
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

			client, err := a.exchangeClient()
			if err != nil {
				return err
			}
			blueprints, err := client.List(ctx)
			if err != nil {
				return err
			}
			idx := -1
			for i := range blueprints {
				if blueprints[i].ID == args[0] {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("blueprint %s not found on the exchange", args[0])
			}
			bp := blueprints[idx]

			id := a.svc.ForkBlueprint(ctx, bp, personalize)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFork, "Forked"))
			fmt.Fprintln(out, ui.LabelValue("Session", shortID(id)))
			fmt.Fprintln(out, ui.LabelValue("Role", bp.Role))
			if personalize {
				questions, err := a.gen.GenerateQuestions(ctx, bp.Role)
				if err != nil {
					return fmt.Errorf("generate assessment: %w", err)
				}
				a.svc.SetQuestions(ctx, questions)
				fmt.Fprintln(out, ui.Muted.Render("Assessment started. Answer with `wp answer`."))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Roadmap copied. See it with `wp status`."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&personalize, "personalize", false, "Re-run the assessment instead of copying the roadmap")

	return cmd
}
