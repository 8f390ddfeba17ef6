// Package main provides the kanban CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/kanban/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
