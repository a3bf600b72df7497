package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/solarroi"
	"github.com/google/subcommands"
)

type lensCmd struct{}

func (*lensCmd) Name() string     { return "lens" }
func (*lensCmd) Synopsis() string { return "show or switch the viewing lens" }
func (*lensCmd) Usage() string {
	return `sroi lens [executive|practitioner]

  Without argument, prints the current lens. The executive lens is read
  only; the practitioner lens can edit, import and export projects.
`
}

func (c *lensCmd) SetFlags(f *flag.FlagSet) {}

func (c *lensCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected at most one lens")
		return subcommands.ExitUsageError
	}
	var lens solarroi.Lens
	if f.NArg() == 1 {
		var err error
		lens, err = solarroi.ParseLens(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if lens == "" {
		fmt.Fprintln(stdout, s.lens)
		return subcommands.ExitSuccess
	}
	if err := s.store.SetLens(ctx, lens); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving lens: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, lens)
	return subcommands.ExitSuccess
}
