package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/solarroi"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
	all    bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a project, or the portfolio, to a file" }
func (*exportCmd) Usage() string {
	return `sroi export [-o <file>|-] <project id>
sroi export -all [-o <file>|-]

  Exports a project as an indented JSON document, by default to
  '<name>-project.json'. With -all, exports every project, one per line, by
  default to '<collection>.jsonl'. '-o -' writes to the standard output.
  Requires the practitioner lens.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, '-' for the standard output")
	f.BoolVar(&c.all, "all", false, "Export every project as JSONL")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && f.NArg() != 0 || !c.all && f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one project id, or -all")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()
	if err := s.lens.CheckEdit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var filename string
	var export func(w io.Writer) error
	if c.all {
		filename = *collection + ".jsonl"
		export = func(w io.Writer) error { return solarroi.ExportPortfolio(w, s.portfolio) }
	} else {
		p, err := s.portfolio.Find(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		filename = solarroi.ExportFilename(p)
		export = func(w io.Writer) error { return solarroi.ExportProject(w, p) }
	}
	if c.output != "" {
		filename = c.output
	}

	if filename == "-" {
		if err := export(stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := writeFile(filename, export); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported to %s\n", filename)
	return subcommands.ExitSuccess
}

// writeFile creates 'filename' and writes it with 'write'.
func writeFile(filename string, write func(w io.Writer) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return write(file)
}

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	all bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a project, or a portfolio, from a file" }
func (*importCmd) Usage() string {
	return `sroi import <project id> <file>
sroi import -all <file>

  Merges a project document over an existing project: fields absent from
  the file are kept, the id is never changed, and the outputs are
  recomputed. With -all, reads a JSONL portfolio: known projects are
  replaced, new ones are added. '-' reads the standard input.
  Requires the practitioner lens.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Import a JSONL portfolio")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && f.NArg() != 1 || !c.all && f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a project id and a file, or -all and a file")
		return subcommands.ExitUsageError
	}
	filename := f.Arg(f.NArg() - 1)

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()
	if err := s.lens.CheckEdit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var r io.Reader = os.Stdin
	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	if c.all {
		n, err := mergePortfolio(s.portfolio, r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := s.save(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving projects: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Imported %d project(s)\n", n)
		return subcommands.ExitSuccess
	}

	current, err := s.portfolio.Find(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := solarroi.ImportProject(r, current)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := s.portfolio.Update(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving projects: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %s into %s\n", filename, p.ID)
	return subcommands.ExitSuccess
}

// mergePortfolio reads a JSONL portfolio from r into p, replacing projects
// with a known id and adding the others. It returns the number of projects read.
func mergePortfolio(p *solarroi.Portfolio, r io.Reader) (int, error) {
	imported, err := solarroi.ImportPortfolio(r)
	if err != nil {
		return 0, err
	}
	for _, pr := range imported.Projects() {
		_, err := p.Update(pr)
		if errors.Is(err, solarroi.ErrProjectNotFound) {
			_, err = p.Add(pr)
		}
		if err != nil {
			return 0, err
		}
	}
	return imported.Len(), nil
}
