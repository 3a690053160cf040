package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var questNum int

	cmd := &cobra.Command{
		Use:   "done [node sub-node task-index]",
		Short: "Complete a task",
		Long:  "Completes a task by address (node id, sub-node id, task index) on the active session, or by daily-quest number with --quest.",
		Args: func(cmd *cobra.Command, args []string) error {
			if q, _ := cmd.Flags().GetInt("quest"); q > 0 {
				if len(args) != 0 {
					return errors.New("--quest takes no positional arguments")
				}
				return nil
			}
			if len(args) != 3 {
				return errors.New("expected: node id, sub-node id, task index (or --quest N)")
			}
			if _, err := strconv.Atoi(args[2]); err != nil {
				return errors.New("task index must be an integer")
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

			var nodeID, subNodeID string
			var idx int
			if questNum > 0 {
				quests := a.svc.DailyQuests()
				if questNum > len(quests) {
					return fmt.Errorf("only %d daily quests today", len(quests))
				}
				q := quests[questNum-1]
				if active, ok := a.svc.Active(); !ok || active.ID != q.SessionID {
					a.svc.SwitchSession(ctx, q.SessionID)
				}
				nodeID, subNodeID, idx = q.NodeID, q.SubNodeID, q.TaskIndex
			} else {
				nodeID = args[0]
				subNodeID = args[1]
				idx, _ = strconv.Atoi(args[2])
			}

			res, ok := a.svc.CompleteTask(ctx, nodeID, subNodeID, idx)
			if !ok {
				return fmt.Errorf("no task at %s/%s[%d] on the active session", nodeID, subNodeID, idx)
			}

			out := cmd.OutOrStdout()
			if res.AlreadyDone {
				fmt.Fprintln(out, ui.Muted.Render("Already completed. Nothing changed."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Task completed."))
			fmt.Fprintln(out, ui.StreakText(res.Streak))
			for range res.Completed {
				fmt.Fprintln(out, ui.Good.Render(ui.IconTarget+" Milestone completed!"))
			}
			if len(res.Unlocked) > 0 {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconMap+" Next milestone unlocked: ")+ui.BadgeUnlocked)
			}
			if res.SignupPrompt {
				fmt.Fprintln(out, ui.Muted.Render("Nice momentum. `wp login` to keep progress across devices."))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&questNum, "quest", 0, "Complete daily quest number N instead of an address")

	return cmd
}
