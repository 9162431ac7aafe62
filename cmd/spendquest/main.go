// Package main is the single-binary entrypoint for SpendQuest.
// One binary serves the API, and doubles as a local client.
package main

import "github.com/spendquest-app/spendquest/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
