package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ledgerlocal/ledgerd/constants"
)

// WatchConfig configures the inbox watcher.
type WatchConfig struct {
	Root        string        // directory to watch (recursive)
	InitialScan bool          // walk the root and emit existing files first
	Debounce    time.Duration // coalesce rapid write/rename bursts
}

// StartWatcher watches an inbox directory tree and emits paths of image
// files dropped into it. The daemon feeds each path through the extractor
// and ingestor; failures there are logged, never fatal.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, error) {
	if cfg.Root == "" {
		return nil, errors.New("no inbox root provided")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("inbox.watcher_create_failed", "error", err)
		return nil, err
	}

	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			return nil
		})
	}
	if err := addDir(cfg.Root); err != nil {
		_ = w.Close()
		return nil, err
	}

	evCh := make(chan string, 256)

	allowed := func(path string) bool {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		_, ok := constants.AllowedImageExts[ext]
		return ok
	}

	go func() {
		defer close(evCh)
		defer w.Close()

		if cfg.InitialScan {
			_ = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
				if walkErr != nil || d.IsDir() || !allowed(path) {
					return nil
				}
				select {
				case evCh <- path:
				case <-ctx.Done():
					return filepath.SkipAll
				}
				return nil
			})
		}

		// Debounce: a file being copied in fires many writes; emit once
		// the burst settles.
		pending := map[string]time.Time{}
		ticker := time.NewTicker(cfg.Debounce)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) {
					if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
						_ = addDir(ev.Name)
						continue
					}
				}
				if (ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write)) && allowed(ev.Name) {
					pending[ev.Name] = time.Now()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("inbox.watch_error", "error", err)
			case now := <-ticker.C:
				for path, last := range pending {
					if now.Sub(last) < cfg.Debounce {
						continue
					}
					delete(pending, path)
					select {
					case evCh <- path:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	logger.Info("inbox.watching", "root", cfg.Root)
	return evCh, nil
}
