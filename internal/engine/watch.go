package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch rebuilds the index whenever the corpus file changes, until ctx is done.
// Bursts of events within the configured debounce window cause a single rebuild.
// The parent directory is watched so that editors replacing the file by rename
// are noticed.
func (e *Engine) Watch(ctx context.Context) error {
	corpusPath, err := filepath.Abs(e.cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve corpus path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			e.logger.Warn("failed to close watcher", "error", closeErr)
		}
	}()

	if err := watcher.Add(filepath.Dir(corpusPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(corpusPath), err)
	}
	e.logger.Info("watching corpus for changes", "path", corpusPath, "debounce", e.cfg.Corpus.WatchDebounce)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCorpusEvent(event, corpusPath) {
				continue
			}
			e.logger.Debug("corpus changed", "op", event.Op.String())
			debounce.Reset(e.cfg.Corpus.WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			if _, err := e.Rebuild(ctx); err != nil {
				e.logger.Error("rebuild after corpus change failed", "error", err)
			}
		}
	}
}

func isCorpusEvent(event fsnotify.Event, corpusPath string) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == corpusPath
}
