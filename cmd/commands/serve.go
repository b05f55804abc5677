package commands

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"reelcut/api"
)

// NewServeCommand creates the API server command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing API over HTTP",
		Long: `Starts an HTTP server exposing the timeline operations, export
pipeline, and project store for the named project.`,
		Run: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) {
	sess, err := openSession(projectName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.close()

	server := api.NewServer(sess.editor, sess.pipeline, sess.store, sess.uploader)
	r := server.NewRouter()

	addr := ":" + sess.cfg.Port
	log.Printf("Starting API server on %s (project %q)", addr, projectName)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/project")
	log.Println("  POST   /api/clips")
	log.Println("  DELETE /api/clips/:id")
	log.Println("  POST   /api/clips/:id/trim")
	log.Println("  POST   /api/timeline/reorder")
	log.Println("  POST   /api/timeline/split")
	log.Println("  PUT    /api/music")
	log.Println("  DELETE /api/music")
	log.Println("  POST   /api/playback/seek|play|pause|zoom")
	log.Println("  POST   /api/history/undo|redo")
	log.Println("  POST   /api/export, GET /api/export/status|download, POST /api/export/cancel")
	log.Println("  POST   /api/project/save|load, GET /api/projects")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
