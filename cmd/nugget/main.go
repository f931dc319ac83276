package main

import (
	"os"

	"github.com/studyztp/nugget/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own errors through the formatter; flag
		// misuse is printed by cobra. Only the exit code is left to us.
		os.Exit(cli.GetExitCode(err))
	}
}
