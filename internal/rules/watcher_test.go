package rules

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/services"
)

func writeBag(t *testing.T, path string, bag *domain.RuleBag) {
	t.Helper()
	data, err := json.Marshal(bag)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func sampleBag() *domain.RuleBag {
	return &domain.RuleBag{
		Rules: []domain.CategoryRule{
			{
				ID:      "watched-rule",
				Name:    "Watched",
				Version: 1,
				Enabled: true,
				Patterns: []domain.CategoryPattern{
					{Type: domain.PatternKeyword, Pattern: "invoice", Weight: 1, Context: domain.ContextContent},
				},
				Target:     domain.Category{Primary: domain.CategoryFinancial},
				Confidence: 0.8,
			},
		},
	}
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	writeBag(t, path, sampleBag())

	categorizer := services.NewCategorizerService()
	watcher, err := NewWatcher(path, categorizer)
	require.NoError(t, err)
	defer watcher.watcher.Close()

	require.NoError(t, watcher.reload())

	rules := categorizer.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, "watched-rule", rules[0].ID)
}

func TestWatcher_Reload_BadFileKeepsRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")

	categorizer := services.NewCategorizerService()
	before := len(categorizer.Rules())

	watcher, err := NewWatcher(path, categorizer)
	require.NoError(t, err)
	defer watcher.watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	assert.Error(t, watcher.reload())
	assert.Len(t, categorizer.Rules(), before)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	writeBag(t, path, sampleBag())

	categorizer := services.NewCategorizerService()
	count, err := LoadFile(path, categorizer)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rules := categorizer.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, "watched-rule", rules[0].ID)
}

func TestLoadFile_MissingFile(t *testing.T) {
	categorizer := services.NewCategorizerService()
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"), categorizer)
	assert.Error(t, err)
}

func TestWatcher_HandleFsEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")

	categorizer := services.NewCategorizerService()
	watcher, err := NewWatcher(path, categorizer)
	require.NoError(t, err)
	defer watcher.watcher.Close()

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "write to watched file",
			event:    fsnotify.Event{Name: path, Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "create of watched file",
			event:    fsnotify.Event{Name: path, Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "rename of watched file",
			event:    fsnotify.Event{Name: path, Op: fsnotify.Rename},
			expected: true,
		},
		{
			name:     "chmod is ignored",
			event:    fsnotify.Event{Name: path, Op: fsnotify.Chmod},
			expected: false,
		},
		{
			name:     "other file is ignored",
			event:    fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, watcher.handleFsEvent(tt.event))
		})
	}
}

func TestWatcher_Start_PicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")

	categorizer := services.NewCategorizerService()
	watcher, err := NewWatcher(path, categorizer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Start(ctx)
	}()

	writeBag(t, path, sampleBag())

	require.Eventually(t, func() bool {
		for _, rule := range categorizer.Rules() {
			if rule.ID == "watched-rule" {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}
