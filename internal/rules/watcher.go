// Package rules provides hot-reloading of categorization rule files.
// A watcher observes a JSON rule bag on disk and re-imports it into
// the categorizer whenever the file changes.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/logger"
)

// Watcher reloads a rule bag file into a categorizer on change.
type Watcher struct {
	path        string
	categorizer driving.Categorizer
	watcher     *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given rule file. The file does
// not need to exist yet; a later create event triggers the first load.
func NewWatcher(path string, categorizer driving.Categorizer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files via
	// rename, which drops a direct file watch.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watching rule directory: %w", err)
	}

	return &Watcher{
		path:        path,
		categorizer: categorizer,
		watcher:     fsWatcher,
	}, nil
}

// Start loads the current file (when present) and then blocks,
// reloading on every change until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	if _, err := os.Stat(w.path); err == nil {
		if err := w.reload(); err != nil {
			logger.Warn("Initial rule load failed: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if change := w.handleFsEvent(event); change {
				if err := w.reload(); err != nil {
					logger.Warn("Rule reload failed: %v", err)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Rule watcher error: %v", err)
		}
	}
}

// handleFsEvent reports whether the event warrants a reload.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// reload parses the rule file and imports it into the categorizer.
// A bad file leaves the previous rule set in place.
func (w *Watcher) reload() error {
	count, err := LoadFile(w.path, w.categorizer)
	if err != nil {
		return err
	}
	logger.Info("Reloaded %d rules from %s", count, w.path)
	return nil
}

// LoadFile reads a JSON rule bag and imports it into the categorizer,
// replacing the current rule set. Returns the number of rules imported.
func LoadFile(path string, categorizer driving.Categorizer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading rule file: %w", err)
	}

	var bag domain.RuleBag
	if err := json.Unmarshal(data, &bag); err != nil {
		return 0, fmt.Errorf("parsing rule file: %w", err)
	}

	if err := categorizer.ImportRules(&bag); err != nil {
		return 0, fmt.Errorf("importing rules: %w", err)
	}
	return len(bag.Rules), nil
}
