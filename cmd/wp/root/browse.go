package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"waypoint/internal/engine"
	"waypoint/internal/exchange"
	"waypoint/internal/ui"
)

func newBrowseCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse published blueprints on the exchange",
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
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGlobe, "Blueprint exchange"))
			if len(blueprints) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing published yet."))
			}
			for _, bp := range blueprints {
				votes := fmt.Sprintf("%+d", bp.Votes)
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.Key.Render(bp.ID),
					bp.Role,
					ui.Gold.Render(votes),
					ui.Muted.Render("by "+bp.AuthorID),
				)
			}

			if !watch {
				return nil
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render("Watching for changes (ctrl+c to stop)…"))
			return client.Subscribe(ctx, func(ev exchange.Event) {
				switch ev.Type {
				case exchange.EventPublished:
					fmt.Fprintf(out, "%s new blueprint %s (%s)\n", ui.IconSparkle, ev.BlueprintID, ev.Blueprint.Role)
				case exchange.EventUnpublished:
					fmt.Fprintf(out, "removed %s\n", ev.BlueprintID)
				case exchange.EventVoted:
					fmt.Fprintf(out, "%s now at %+d votes\n", ev.BlueprintID, ev.Blueprint.Votes)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Stay connected and stream catalog changes")

	return cmd
}

func newVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote <blueprint-id> <up|down>",
		Short: "Vote on a published blueprint",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("expected: blueprint id and up|down")
			}
			if !engine.VoteDirection(args[1]).IsValid() {
				return errors.New("vote must be up or down")
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

			if err := a.svc.VoteBlueprint(ctx, args[0], engine.VoteDirection(args[1])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Vote recorded."))
			return nil
		},
	}

	return cmd
}
