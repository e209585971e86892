package main

import (
	"os"

	"github.com/mamadbah2/salesboard/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
