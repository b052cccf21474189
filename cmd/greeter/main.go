// Package main provides the greeter CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/greeter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
