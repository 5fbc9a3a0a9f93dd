// Package main provides the entry point for the derbytally CLI tool.
package main

import "github.com/packleader/derbytally/cmd/derbytally/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
