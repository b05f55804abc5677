package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"reelcut/config"
	"reelcut/export"
	"reelcut/storage"
	"reelcut/timeline"
)

var rootCmd = &cobra.Command{
	Use:   "reelcut",
	Short: "Timeline editor and renderer for short-form video",
	Long: `Reelcut assembles trimmed video clips and a music bed into a rendered
video. It offers an interactive terminal editor, an HTTP API, and a
headless export command, all operating on the same saved projects.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Bare invocation opens the editor, same as `reelcut edit`.
		runEdit(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectName, "project", "default", "project name to operate on")
	rootCmd.AddCommand(NewEditCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewProjectsCommand())
}

var projectName string

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session bundles the pieces every command needs.
type session struct {
	cfg      config.Config
	store    *storage.Store
	editor   *timeline.Editor
	pipeline *export.Pipeline
	uploader *storage.RenderUploader
}

// openSession loads configuration, opens the project store, and restores the
// named project into a fresh editor. A missing project starts empty.
func openSession(name string) (*session, error) {
	cfg := config.Load()

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening project store: %w", err)
	}

	editor := timeline.NewEditor()
	state, err := store.Load(name)
	switch {
	case err == nil:
		editor.Restore(state)
	case errors.Is(err, storage.ErrProjectNotFound):
		log.Printf("Project %q not found, starting empty", name)
	default:
		store.Close()
		return nil, fmt.Errorf("loading project %q: %w", name, err)
	}

	return &session{
		cfg:      cfg,
		store:    store,
		editor:   editor,
		pipeline: export.NewPipeline(cfg.ScratchDir()),
		uploader: storage.NewRenderUploader(context.Background(), cfg),
	}, nil
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("Warning: closing project store: %v", err)
		}
	}
}
