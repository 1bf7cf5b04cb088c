// Package main is the entry point for pgedge-salesload.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-salesload/internal/cli"
	"github.com/pgEdge/pgedge-salesload/internal/etl"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(etl.ExitCode(err))
	}
}
