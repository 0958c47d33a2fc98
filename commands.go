package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardstream/pokertracker/internal/game"
	"github.com/cardstream/pokertracker/internal/ingest"
	"github.com/cardstream/pokertracker/internal/persistence"
	"github.com/cardstream/pokertracker/internal/rangeserver"
	"github.com/cardstream/pokertracker/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// StatsCmd ingests a log directory and prints the per-player summary table.
type StatsCmd struct {
	Dir             string `help:"Log directory (overrides config)." arg:"" optional:""`
	Hero            string `help:"Restrict to cash hands the hero played."`
	SkipTournaments bool   `help:"Skip tournament-tagged blocks."`
	Workers         int    `help:"Concurrent file parsers (0 = one per CPU)."`
	CSV             string `help:"Write the full per-hand table to this CSV file." type:"path"`
	Ranges          bool   `help:"Also print showdown range counters."`
}

func (cmd *StatsCmd) Run(rc *runContext) error {
	history, res, err := cmd.buildHistory(rc)
	if err != nil {
		return err
	}
	engine := stats.NewEngine(history)

	fmt.Println(headerStyle.Render("player statistics"))
	fmt.Printf("%s %d files, %d hands, %d failed, %d skipped\n\n",
		labelStyle.Render("ingested:"), res.Files, history.Len(), res.Failed, res.Skipped)

	fmt.Printf("%-20s %6s %6s %6s %6s %6s %6s %10s\n",
		"player", "hands", "vpip", "pfr", "3bet", "wtsd", "wsd", "net")
	for _, s := range engine.Summarize() {
		net := fmt.Sprintf("%+.2f", s.Net)
		if s.Net >= 0 {
			net = winStyle.Render(net)
		} else {
			net = lossStyle.Render(net)
		}
		fmt.Printf("%-20s %6d %5.1f%% %5.1f%% %5.1f%% %5.1f%% %5.1f%% %10s\n",
			s.Player, s.Hands,
			s.VPIP*100, s.PFR*100, s.ThreeBet*100,
			s.WentToShowdown*100, s.WonAtShowdown*100, net)
	}

	if cmd.Ranges {
		printRanges(engine.Ranges())
	}

	if cmd.CSV != "" {
		f, err := os.Create(cmd.CSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := stats.WriteStatsCSV(f, engine.Rows()); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		rc.logger.Info("statistics exported", "path", cmd.CSV, "rows", len(engine.Rows()))
	}
	return nil
}

func (cmd *StatsCmd) buildHistory(rc *runContext) (*game.History, *ingest.Result, error) {
	dir := cmd.Dir
	if dir == "" {
		dir = rc.cfg.LogDir
	}
	hero := cmd.Hero
	if hero == "" {
		hero = rc.cfg.Hero
	}
	res, err := ingest.Dir(rc, dir, ingest.Options{
		Workers:         pick(cmd.Workers, rc.cfg.Workers),
		SkipTournaments: cmd.SkipTournaments || rc.cfg.SkipTournaments,
		Logger:          rc.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	var heroP *game.Participant
	if hero != "" {
		heroP = &game.Participant{Name: hero}
	}
	return game.NewHistory(res.Hands, heroP), res, nil
}

func printRanges(table stats.RangeTable) {
	fmt.Println()
	fmt.Println(headerStyle.Render("showdown ranges"))
	for player, positions := range table {
		fmt.Printf("%s\n", labelStyle.Render(player))
		for position, hands := range positions {
			var parts []string
			for notation, cell := range hands {
				parts = append(parts,
					fmt.Sprintf("%s(open:%d call:%d 3bet:%d)", notation, cell.Open, cell.Call, cell.ThreeBet))
			}
			fmt.Printf("  %-16s %s\n", position, strings.Join(parts, " "))
		}
	}
}

// MoneyCmd prints the hero's per-hand money movement with cumulative totals.
type MoneyCmd struct {
	Dir             string `help:"Log directory (overrides config)." arg:"" optional:""`
	Hero            string `help:"Statistics subject." required:""`
	SkipTournaments bool   `help:"Skip tournament-tagged blocks."`
	Workers         int    `help:"Concurrent file parsers (0 = one per CPU)."`
	CSV             string `help:"Write the rows to this CSV file." type:"path"`
}

func (cmd *MoneyCmd) Run(rc *runContext) error {
	stCmd := StatsCmd{Dir: cmd.Dir, Hero: cmd.Hero, SkipTournaments: cmd.SkipTournaments, Workers: cmd.Workers}
	history, _, err := stCmd.buildHistory(rc)
	if err != nil {
		return err
	}
	rows := stats.MoneyHistory(history)

	fmt.Println(headerStyle.Render("money history for " + cmd.Hero))
	fmt.Printf("%-20s %-12s %10s %10s %10s %12s\n",
		"date", "hand", "invested", "won", "net", "cumulative")
	for _, r := range rows {
		net := fmt.Sprintf("%+.2f", r.Net)
		if r.Net >= 0 {
			net = winStyle.Render(net)
		} else {
			net = lossStyle.Render(net)
		}
		fmt.Printf("%-20s %-12s %10.2f %10.2f %10s %12.2f\n",
			r.Date.Format("2006/01/02 15:04:05"), r.HandID, r.Invested, r.Won, net, r.CumNet)
	}

	if cmd.CSV != "" {
		f, err := os.Create(cmd.CSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := stats.WriteMoneyCSV(f, rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		rc.logger.Info("money history exported", "path", cmd.CSV, "rows", len(rows))
	}
	return nil
}

// WatchCmd tails a log directory and reports each hand as it completes.
type WatchCmd struct {
	Dir             string `help:"Directory to watch (overrides config)." arg:"" optional:""`
	SkipTournaments bool   `help:"Skip tournament-tagged blocks."`
}

func (cmd *WatchCmd) Run(rc *runContext) error {
	dir := cmd.Dir
	if dir == "" {
		dir = rc.cfg.LogDir
	}
	w, err := ingest.NewWatcher(dir, ingest.WatchConfig{
		SkipTournaments: cmd.SkipTournaments || rc.cfg.SkipTournaments,
		Logger:          rc.logger,
		OnHand: func(h *game.Hand) {
			winners := make([]string, 0, len(h.Winners))
			for _, p := range h.Winners {
				winners = append(winners, p.Name)
			}
			fmt.Printf("%s hand %s: pot %.2f, winners %s\n",
				labelStyle.Render(h.Date.Format("15:04:05")), h.ID, h.Pot, strings.Join(winners, ", "))
		},
	})
	if err != nil {
		return err
	}
	err = w.Run(rc)
	if rc.Err() != nil {
		return nil // interrupted, clean exit
	}
	return err
}

// ServeCmd runs the range storage HTTP service.
type ServeCmd struct {
	Listen string `help:"Bind address (overrides config)."`
	DB     string `help:"SQLite database path (overrides config)." type:"path"`
}

func (cmd *ServeCmd) Run(rc *runContext) error {
	dbPath := cmd.DB
	if dbPath == "" {
		dbPath = rc.cfg.DBPath
	}
	listen := cmd.Listen
	if listen == "" {
		listen = rc.cfg.Listen
	}
	store, err := persistence.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := rangeserver.New(store, rc.logger)
	if err := srv.Run(rc, listen); err != nil && rc.Err() == nil {
		return err
	}
	return nil
}

func pick(flag, cfg int) int {
	if flag != 0 {
		return flag
	}
	return cfg
}
