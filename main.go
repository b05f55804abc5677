package main

import (
	"github.com/joho/godotenv"

	"reelcut/cmd/commands"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	commands.Execute()
}
