// Package main provides the sqlfixture CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlfixture/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
