package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/pr-poehali-dev/fteam-dark-site/internal/cli"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
