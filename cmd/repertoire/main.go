// Package main provides the repertoire CLI tool for building and querying
// per-player chess move statistics from PGN game archives.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
