package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"waypoint/internal/engine"
	"waypoint/internal/ui"
)

func newEvidenceCmd() *cobra.Command {
	var link string
	var note string

	cmd := &cobra.Command{
		Use:   "evidence <node> <sub-node> <task-index>",
		Short: "Attach evidence to a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("expected: node id, sub-node id, task index")
			}
			if _, err := strconv.Atoi(args[2]); err != nil {
				return errors.New("task index must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if link == "" && note == "" {
				return errors.New("provide --link or --note")
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			idx, _ := strconv.Atoi(args[2])
			ev := engine.Evidence{Content: link, Notes: note}
			if !a.svc.SubmitEvidence(ctx, args[0], args[1], idx, ev) {
				return fmt.Errorf("no task at %s/%s[%d] on the active session", args[0], args[1], idx)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScroll+" Evidence recorded."))
			return nil
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "URL backing the work")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")

	return cmd
}
