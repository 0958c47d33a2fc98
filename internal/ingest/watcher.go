package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/cardstream/pokertracker/internal/game"
	"github.com/cardstream/pokertracker/internal/parser"
)

// Watcher tails a directory of hand-history logs and emits every newly
// completed hand. Hands are deduplicated by identifier, so re-reading a
// growing file never emits the same hand twice.
type Watcher struct {
	dir     string
	parser  *parser.Parser
	onHand  func(*game.Hand)
	logger  *log.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	offsets map[string]int64
	seen    map[string]bool
}

// WatchConfig configures a directory watcher.
type WatchConfig struct {
	SkipTournaments bool
	// OnHand receives each newly parsed hand, in file order.
	OnHand func(*game.Hand)
	// Logger receives diagnostics. Nil uses the default logger.
	Logger *log.Logger
}

// NewWatcher creates a watcher for the given directory. Call Run to start.
func NewWatcher(dir string, cfg WatchConfig) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", dir)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		dir:     dir,
		parser:  parser.New(parser.Config{SkipTournaments: cfg.SkipTournaments, Logger: logger}),
		onHand:  cfg.OnHand,
		logger:  logger,
		watcher: fsw,
		offsets: make(map[string]int64),
		seen:    make(map[string]bool),
	}, nil
}

// Run watches until the context is canceled. Existing file content is
// consumed first, then filesystem events drive incremental reads, with a
// periodic poll as fallback for filesystems with unreliable notification.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", w.dir, err)
	}
	w.logger.Info("watching for new hands", "dir", w.dir)

	w.sweep()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && isLogFile(event.Name) {
				w.consume(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *Watcher) sweep() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("watch sweep failed", "error", err)
		return
	}
	for _, e := range entries {
		if !e.IsDir() && isLogFile(e.Name()) {
			w.consume(filepath.Join(w.dir, e.Name()))
		}
	}
}

// consume re-reads a file from its last known offset and emits any newly
// completed hand blocks. The trailing block is held back until a blank line
// (or further growth) shows it is complete.
func (w *Watcher) consume(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Size() < w.offsets[path] {
		w.offsets[path] = 0 // truncated or rotated
	}
	if info.Size() == w.offsets[path] {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("watched file unreadable", "path", path, "error", err)
		return
	}
	w.offsets[path] = info.Size()

	content := string(data)
	blocks := parser.SplitBlocks(content)
	if len(blocks) > 0 && !strings.HasSuffix(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		blocks = blocks[:len(blocks)-1] // in-progress hand, wait for its blank line
	}
	for _, block := range blocks {
		h, err := w.parser.ParseBlock(block)
		if err != nil || h == nil {
			continue
		}
		if w.seen[h.ID] {
			continue
		}
		w.seen[h.ID] = true
		w.logger.Debug("new hand", "path", path, "hand", h.ID)
		if w.onHand != nil {
			w.onHand(h)
		}
	}
}

func isLogFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
