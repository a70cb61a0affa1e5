package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testBag() *domain.RuleBag {
	return &domain.RuleBag{
		Rules: []domain.CategoryRule{
			{
				ID:      "rule-1",
				Name:    "Invoices",
				Version: 2,
				Enabled: true,
				Patterns: []domain.CategoryPattern{
					{Type: domain.PatternKeyword, Pattern: "invoice", Weight: 1.5, Context: domain.ContextAnywhere},
					{Type: domain.PatternSemantic, Keywords: []string{"total", "due"}, Weight: 1, Context: domain.ContextContent},
				},
				Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "invoice"},
				Confidence: 0.85,
				Priority:   10,
			},
			{
				ID:      "rule-2",
				Name:    "Leases",
				Version: 1,
				Enabled: false,
				Patterns: []domain.CategoryPattern{
					{Type: domain.PatternRegex, Pattern: `(?i)\blease\b`, Weight: 1, Context: domain.ContextContent},
				},
				Target:     domain.Category{Primary: domain.CategoryProperty, Secondary: "lease"},
				Confidence: 0.8,
				Priority:   5,
			},
		},
		CustomCategories: map[string]domain.Category{
			"receipts":   {Primary: domain.CategoryFinancial, Secondary: "receipt"},
			"warranties": {Primary: domain.CategoryLegal, Secondary: "warranty"},
		},
	}
}

func TestStore_Migrations(t *testing.T) {
	store := newTestStore(t)

	var version int
	row := store.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.GreaterOrEqual(t, version, 1)
}

func TestStore_SaveAndLoadBag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBag(ctx, testBag()))

	loaded, err := store.LoadBag(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Rules, 2)

	// Priority ordering: rule-1 (priority 10) first.
	assert.Equal(t, "rule-1", loaded.Rules[0].ID)
	assert.Equal(t, 2, loaded.Rules[0].Version)
	assert.True(t, loaded.Rules[0].Enabled)
	require.Len(t, loaded.Rules[0].Patterns, 2)
	assert.Equal(t, domain.PatternKeyword, loaded.Rules[0].Patterns[0].Type)
	assert.Equal(t, []string{"total", "due"}, loaded.Rules[0].Patterns[1].Keywords)
	assert.Equal(t, domain.CategoryFinancial, loaded.Rules[0].Target.Primary)

	assert.Equal(t, "rule-2", loaded.Rules[1].ID)
	assert.False(t, loaded.Rules[1].Enabled)

	require.Len(t, loaded.CustomCategories, 2)
	assert.Equal(t, domain.CategoryFinancial, loaded.CustomCategories["receipts"].Primary)
	assert.Equal(t, "warranty", loaded.CustomCategories["warranties"].Secondary)
}

func TestStore_SaveBag_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBag(ctx, testBag()))
	require.NoError(t, store.SaveBag(ctx, &domain.RuleBag{
		Rules: []domain.CategoryRule{
			{ID: "rule-3", Name: "Medical", Version: 1, Enabled: true,
				Target: domain.Category{Primary: domain.CategoryMedical}, Confidence: 0.9},
		},
	}))

	loaded, err := store.LoadBag(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Rules, 1)
	assert.Equal(t, "rule-3", loaded.Rules[0].ID)
	assert.Empty(t, loaded.CustomCategories)
}

func TestStore_LoadBag_Empty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadBag(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveBag(ctx, testBag()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadBag(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Rules, 2)
}
