// Command sroi manages a portfolio of solar and microgrid capital projects.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/solarroi/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers the shell completion requests, and exits, when run by the shell.
	cmd.Completion().Complete("sroi")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
