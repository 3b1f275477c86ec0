package main

import (
	"os"

	"github.com/aquamarine5/qqbook-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
