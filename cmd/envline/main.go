package main

import (
	"fmt"
	"os"

	"github.com/hbjs97/envline/internal/cli"
)

func main() {
	app := &cli.App{}
	cmd := app.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "envline: %v\n", err)
		os.Exit(int(cli.MapExitCode(err)))
	}
}
