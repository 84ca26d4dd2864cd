// Package main provides the teardown CLI.
package main

import (
	"os"

	"github.com/benchtop-labs/teardown/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
