package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

func TestRulesListCmd_ListsBuiltins(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rules", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "builtin-legal-contract")
	assert.Contains(t, buf.String(), "rules")
}

func TestRulesAddCmd_AddsFromFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rule := domain.CategoryRule{
		Name:    "Receipts",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "receipt", Weight: 1, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "receipt"},
		Confidence: 0.8,
	}
	data, err := json.Marshal(rule)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rule.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rules", "add", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Added rule Receipts")

	found := false
	for _, r := range categorizerService.Rules() {
		if r.Name == "Receipts" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRulesRemoveCmd_UnknownRule(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"rules", "remove", "no-such-rule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestRulesExportImport_RoundTrip(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "rules.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rules", "export", path})
	err := rootCmd.Execute()
	require.NoError(t, err)

	before := len(categorizerService.Rules())

	rootCmd.SetArgs([]string{"rules", "import", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	err = rootCmd.Execute()
	require.NoError(t, err)

	assert.Len(t, categorizerService.Rules(), before)
}
