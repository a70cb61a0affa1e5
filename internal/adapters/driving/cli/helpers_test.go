package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/custodia-labs/docmind/internal/adapters/driven/embedding/pseudo"
	"github.com/custodia-labs/docmind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/services"
	"github.com/custodia-labs/docmind/internal/extract"
)

// setupTestServices wires real in-memory services and returns a
// cleanup func restoring the previous wiring.
func setupTestServices() func() {
	prevAnalyzer := analyzerService
	prevCategorizer := categorizerService
	prevSearch := searchService

	analyzerService = services.NewAnalyzerService(extract.New(), memory.NewResultStore(), domain.DefaultAnalysisConfig())
	categorizerService = services.NewCategorizerService()
	searchService = services.NewSearchIndexService(memory.NewIndexStore(), pseudo.NewEmbedder(0))

	return func() {
		analyzerService = prevAnalyzer
		categorizerService = prevCategorizer
		searchService = prevSearch
	}
}

// writeTempDoc writes content to a temp file and returns its path.
func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}
