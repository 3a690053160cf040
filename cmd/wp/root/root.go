package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"waypoint/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "wp",
	Short:         "Waypoint — assessment-driven career roadmaps",
	Long:          "Waypoint turns a career goal into a skill assessment and a milestone roadmap, then tracks your progress, streaks and daily quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newNewCmd(),
		newAnswerCmd(),
		newRegenCmd(),
		newListCmd(),
		newUseCmd(),
		newRmCmd(),
		newResetCmd(),
		newDoneCmd(),
		newEvidenceCmd(),
		newLogCmd(),
		newQuestsCmd(),
		newStatusCmd(),
		newBoardCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newPublishCmd(),
		newUnpublishCmd(),
		newBrowseCmd(),
		newVoteCmd(),
		newForkCmd(),
		newExportCmd(),
		newImportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
