package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <minutes>",
		Short: "Log study time on the active session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("minutes is required")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return errors.New("minutes must be a positive integer")
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

			if _, ok := a.svc.Active(); !ok {
				return errors.New("no active session")
			}
			minutes, _ := strconv.Atoi(args[0])
			a.svc.LogTime(ctx, minutes)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Logged %d minute(s) for today.", minutes)))
			return nil
		},
	}

	return cmd
}
