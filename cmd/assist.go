package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinwall"
	"github.com/etnz/coinwall/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd asks Gemini a question about the current wallet.
type assistCmd struct {
	offline bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the wallet" }
func (*assistCmd) Usage() string {
	return `cw assist [-offline] <question>

  Sends the current wallet summary together with your question to Gemini
  and prints the answer. Requires GEMINI_API_KEY in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip the price fetch, assist on invested values only.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected a question")
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if !c.offline {
		if err := wallet.Revalue(ctx, coinwall.NewBinance()); err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf("You are a personal crypto wallet assistant. Here is the wallet:\n\n%s\n\nQuestion: %s",
		renderer.SummaryMarkdown(coinwall.NewSummary(wallet)), question)

	resp, err := client.Models.GenerateContent(ctx, "gemini-2.5-flash", genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error from Gemini:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
