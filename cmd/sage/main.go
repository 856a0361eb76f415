// Package main is the single-binary entrypoint for sage, the local
// progression and reward engine.
package main

import "github.com/sage-journal/sage/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
