package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"reelcut/export"
)

var exportOut string

// NewExportCommand creates the headless export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the project timeline to a video file",
		Long: `Renders the named project without opening the editor: each clip is
trimmed, the segments are concatenated, and the music bed is mixed in.
Ctrl+C cancels the render and cleans up scratch files.`,
		Run: runExport,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default reelcut_<timestamp>.mp4)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) {
	sess, err := openSession(projectName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("reelcut_%d.mp4", time.Now().Unix())
	}

	log.Printf("Exporting project %q to %s", projectName, out)
	data, err := sess.pipeline.Export(ctx, sess.editor.Snapshot(), func(p export.Progress) {
		log.Printf("[%s] %3d%% %s", p.Phase, p.Percent, p.Message)
	})
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("writing %s: %v", out, err)
	}
	log.Printf("Export complete: %s (%d bytes)", out, len(data))

	if sess.uploader != nil {
		uploadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		key, err := sess.uploader.Upload(uploadCtx, out, data)
		if err != nil {
			log.Printf("Warning: S3 upload failed: %v", err)
			return
		}
		log.Printf("Uploaded render to s3 key %s", key)
	}
}
