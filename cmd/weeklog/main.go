package main

import (
	"fmt"
	"os"

	"github.com/balkashynov/weeklog/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "weeklog:", err)
		os.Exit(1)
	}
}