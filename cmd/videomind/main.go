package main

import (
	"log"

	"videomind/cmd/videomind/cmd"
	"videomind/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Error loading environment: %v", err)
	}
	cmd.Execute()
}
