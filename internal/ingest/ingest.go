// Package ingest walks directories of hand-history log files and feeds
// their contents through the parser, fanning file reads out over a bounded
// worker pool.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardstream/pokertracker/internal/game"
	"github.com/cardstream/pokertracker/internal/parser"
)

// Progress is a snapshot delivered after each file finishes.
type Progress struct {
	Path  string
	Done  int
	Total int
}

// Options controls a directory ingestion run.
type Options struct {
	// Workers caps the number of files parsed concurrently.
	// Zero means one worker per CPU.
	Workers int
	// SkipTournaments is passed through to the parser.
	SkipTournaments bool
	// OnProgress, when set, is invoked after each file completes.
	// Leave nil for nested or quiet invocations.
	OnProgress func(Progress)
	// Logger receives diagnostics. Nil uses the default logger.
	Logger *log.Logger
}

// Result carries everything a directory run produced. Hands are ordered by
// file path, preserving in-file order within each file.
type Result struct {
	Hands   []*game.Hand
	Files   int
	Failed  int
	Skipped int
}

// Dir parses every .txt file under root. The only hard failure is an
// unusable root directory; unreadable files and malformed blocks are
// counted and logged, never fatal.
func Dir(ctx context.Context, root string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("log root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log root %s is not a directory", root)
	}

	files, err := collectLogFiles(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type fileResult struct {
		hands   []*game.Hand
		failed  int
		skipped int
	}

	results := make([]fileResult, len(files))
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var fr fileResult
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("log file unreadable", "path", path, "error", err)
				fr.failed = 1
			} else {
				p := parser.New(parser.Config{SkipTournaments: opts.SkipTournaments, Logger: logger})
				fr = fileResult{hands: p.Parse(string(data)), failed: p.Failed(), skipped: p.Skipped()}
			}
			mu.Lock()
			results[i] = fr
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(Progress{Path: path, Done: done, Total: len(files)})
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: len(files)}
	for _, fr := range results {
		res.Hands = append(res.Hands, fr.hands...)
		res.Failed += fr.failed
		res.Skipped += fr.skipped
	}
	logger.Info("ingestion complete",
		"files", res.Files, "hands", len(res.Hands), "failed", res.Failed, "skipped", res.Skipped)
	return res, nil
}

func collectLogFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
