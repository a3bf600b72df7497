package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/solarroi/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `sroi assist [-model <name>] [<prompt>]

  Starts an interactive session with an assistant that can read the
  portfolio, compute what-if outputs and search the web. The session never
  modifies the projects. Type 'bye' to exit.

  The Gemini client is configured from the environment (GEMINI_API_KEY, or
  the GOOGLE_* variables for Vertex AI).
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", config.Model, "Model of the assistant")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading projects: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(c.model, s.portfolio)
	researcher := agent.NewResearcher(c.model)
	a := agent.New(stdout, os.Stdin, c.model, analyst, researcher)
	a.Print = func(w io.Writer, answer string) { printMarkdown(answer) }

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
