package main

import (
	"os"

	"github.com/bnema/kahadb-trace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
