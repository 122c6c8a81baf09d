package main

import (
	"os"

	"github.com/wonny/dgi/cmd/dgi/commands"
)

// main is the entry point for the DGI CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dgi [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
