package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"waypoint/internal/engine"
	"waypoint/internal/ui"
)

// blueprintFile is the on-disk YAML shape shared by export and import.
type blueprintFile struct {
	ID      string          `yaml:"id"`
	Author  string          `yaml:"author"`
	Role    string          `yaml:"role"`
	Goal    string          `yaml:"goal"`
	Roadmap *engine.Roadmap `yaml:"roadmap"`
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [session]",
		Short: "Export a session's roadmap as a YAML blueprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var sess *engine.Session
			if len(args) == 1 {
				sess, err = a.resolveSession(args[0])
				if err != nil {
					return err
				}
			} else {
				var ok bool
				sess, ok = a.svc.Active()
				if !ok {
					return errors.New("no active session")
				}
			}
			if sess.Roadmap == nil || len(sess.Roadmap.Nodes) == 0 {
				return errors.New("session has no roadmap to export")
			}

			author := "anonymous"
			if u, ok := a.svc.CurrentUser(); ok {
				author = u.ID
			}
			bf := blueprintFile{
				ID:      sess.ID,
				Author:  author,
				Role:    sess.Role,
				Goal:    sess.Goal,
				Roadmap: sess.Roadmap,
			}
			data, err := yaml.Marshal(bf)
			if err != nil {
				return fmt.Errorf("encode blueprint: %w", err)
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Exported to "+outPath+"."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML blueprint as a new session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file path is required")
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

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var bf blueprintFile
			if err := yaml.Unmarshal(data, &bf); err != nil {
				return fmt.Errorf("parse blueprint: %w", err)
			}
			if bf.Roadmap == nil || len(bf.Roadmap.Nodes) == 0 {
				return errors.New("blueprint has no roadmap")
			}

			bp := engine.Blueprint{
				ID:       bf.ID,
				AuthorID: bf.Author,
				Role:     bf.Role,
				Goal:     bf.Goal,
				Roadmap:  bf.Roadmap,
			}
			id := a.svc.ForkBlueprint(ctx, bp, false)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Imported as session %s.", shortID(id))))
			return nil
		},
	}

	return cmd
}
