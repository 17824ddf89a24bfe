// Package main is the entry point for the fidash CLI binary.
package main

import (
	"os"

	cli "fi-dashboard/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
