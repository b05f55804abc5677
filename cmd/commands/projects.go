package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"reelcut/config"
	"reelcut/storage"
)

// NewProjectsCommand creates the project listing command
func NewProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List saved projects",
		Run:   runProjects,
	}
}

func runProjects(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	projects, err := store.List()
	if err != nil {
		log.Fatalf("listing projects: %v", err)
	}
	if len(projects) == 0 {
		fmt.Println("No saved projects.")
		return
	}
	for _, p := range projects {
		fmt.Printf("%-30s  %s\n", p.Name, p.UpdatedAt)
	}
}
