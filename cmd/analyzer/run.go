package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"MarketLens/internal/report"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	topN  int
	quiet bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run the analysis once and print the report" }
func (*runCmd) Usage() string {
	return `analyzer [-config <file>] run [-top n] [-q]

  Loads every CSV in the input directory, computes all analytics, writes
  the SQLite and CSV outputs and prints the market report.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.topN, "top", 0, "Number of top performers for cumulative returns (overrides config)")
	f.BoolVar(&c.quiet, "q", false, "Do not print the report")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.topN)
	if err != nil {
		fail(err)
		return subcommands.ExitUsageError
	}
	defer a.Close()

	out, err := a.pipeline.Run(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if !c.quiet {
		if err := report.Write(os.Stdout, out.Result); err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
	}
	if out.PersistErr != nil {
		fail(out.PersistErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
