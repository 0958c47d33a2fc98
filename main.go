// Command pokertracker parses poker hand-history logs and derives
// per-player statistics, money history and showdown ranges. It can also
// watch a directory for new hands and serve stored ranges over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardstream/pokertracker/internal/config"
)

var version = "dev"

type cli struct {
	Config  string           `help:"Path to YAML config file." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Print version and exit."`

	Stats StatsCmd `cmd:"" help:"Parse logs and print per-player statistics."`
	Money MoneyCmd `cmd:"" help:"Print the hero's money history."`
	Watch WatchCmd `cmd:"" help:"Watch a directory and report new hands as they complete."`
	Serve ServeCmd `cmd:"" help:"Serve stored range definitions over HTTP."`
}

// runContext carries the resolved config and logger into each command.
type runContext struct {
	context.Context
	cfg    *config.Config
	logger *log.Logger
}

func main() {
	var c cli
	parsed := kong.Parse(&c,
		kong.Name("pokertracker"),
		kong.Description("Hand-history parsing and player statistics."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	cfg, err := config.Load(c.Config)
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = parsed.Run(&runContext{Context: ctx, cfg: cfg, logger: logger})
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
