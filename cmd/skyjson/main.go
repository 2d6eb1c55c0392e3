// Package main provides the skyjson command line tool.
package main

import (
	"os"

	"github.com/skyjson/skyjson/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
