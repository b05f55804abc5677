package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reelcut/tui"
)

// NewEditCommand creates the interactive editor command
func NewEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive timeline editor",
		Long: `Opens the terminal editor for the named project. Clips are trimmed,
split, and reordered on a zoomable timeline with live playback preview.
Changes are saved back to the project with 'w'.`,
		Run: runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) {
	sess, err := openSession(projectName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.close()

	err = tui.Run(tui.Options{
		Editor:      sess.editor,
		Pipeline:    sess.pipeline,
		Store:       sess.store,
		Uploader:    sess.uploader,
		ProjectName: projectName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
		os.Exit(1)
	}
}
