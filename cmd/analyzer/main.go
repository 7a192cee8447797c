// Command analyzer runs the OHLCV analytics pipeline once or on a schedule.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&runCmd{}, "analysis")
	commander.Register(&watchCmd{}, "analysis")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
