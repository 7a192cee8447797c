package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"MarketLens/internal/notifier"
	"MarketLens/internal/scheduler"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	skipInitial bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-run the analysis on the configured cron schedule" }
func (*watchCmd) Usage() string {
	return `analyzer [-config <file>] watch [-no-initial]

  Runs the analysis now and then on schedule.cron until interrupted.
  Sends a digest to Telegram after each run when configured.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipInitial, "no-initial", false, "Wait for the first scheduled tick instead of running immediately")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(0)
	if err != nil {
		fail(err)
		return subcommands.ExitUsageError
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sender scheduler.Sender
	if a.cfg.TelegramEnabled() {
		sender = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.log)
	}

	sched := scheduler.NewScheduler(ctx, a.pipeline, sender, a.log)
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if !c.skipInitial {
		sched.RunNow()
	}
	sched.Start()
	a.log.Info().Str("schedule", a.cfg.Schedule.Cron).Msg("MarketLens is running. Press Ctrl+C to stop.")

	<-ctx.Done()
	a.log.Info().Msg("Shutdown signal received, stopping...")
	sched.Stop()
	return subcommands.ExitSuccess
}
