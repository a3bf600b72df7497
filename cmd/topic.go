package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/solarroi/docs"
	"github.com/google/subcommands"
)

// topicCmd holds the flags for the 'topic' subcommand.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the sroi documentation" }
func (*topicCmd) Usage() string {
	return `sroi topic [-l] [<topic>...]

  Prints the documentation topics: outputs, variables, tracks, storage, lens.
  Without topic, prints the introduction; '*' prints every topic.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the topics with their title")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	all, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		for _, t := range all {
			fmt.Fprintf(stdout, "%-10s %s\n", t, docs.Title(t))
		}
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	for _, t := range topics {
		if t != "*" && t != "readme" && !slices.Contains(all, t) {
			fmt.Fprintf(os.Stderr, "Error: unknown topic %q, expected one of %s\n", t, strings.Join(all, ", "))
			return subcommands.ExitUsageError
		}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
