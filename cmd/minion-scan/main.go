package main

import (
	"os"

	"github.com/minion/minion-scan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
