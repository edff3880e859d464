package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/etnz/coinwall/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion: exits early when invoked by the shell
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"snapshot": predict.Files("*"),
		},
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"offline": predict.Nothing}},
			"load":    {},
			"import":  {Args: predict.Files("*.csv")},
			"price":   {},
			"watch":   {},
			"assist":  {},
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()

	// let a Ctrl-C interrupt the watch loop between cycles
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(int(commander.Execute(ctx)))
}
