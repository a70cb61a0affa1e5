// Package cli implements the docmind command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docmind/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docmind/internal/adapters/driven/embedding/pseudo"
	"github.com/custodia-labs/docmind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docmind/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/core/services"
	"github.com/custodia-labs/docmind/internal/extract"
	"github.com/custodia-labs/docmind/internal/logger"
	"github.com/custodia-labs/docmind/internal/rules"
)

var (
	version       = "dev"
	verboseFlag   bool
	rulesFileFlag string
	dataDirFlag   string

	analyzerService    driving.Analyzer
	categorizerService driving.Categorizer
	searchService      driving.SearchService

	// ruleStore persists rule mutations when --data-dir is set.
	ruleStore driven.RuleStore
)

var rootCmd = &cobra.Command{
	Use:   "docmind",
	Short: "Local document intelligence",
	Long: `docmind analyzes, categorizes, and indexes personal documents.
All processing is local: classification, entity extraction, PII
detection, and search run on-host without network calls.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return ensureServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rulesFileFlag, "rules-file", "",
		"JSON rule bag loaded at startup and watched during batch runs")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", os.Getenv("DOCMIND_DATA_DIR"),
		"directory for persistent rule storage (empty keeps rules in memory)")
}

// Execute runs the root command. Services left unset by SetServices are
// wired after flag parsing, before the command runs.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// SetServices injects service implementations. Used by main and tests.
func SetServices(analyzer driving.Analyzer, categorizer driving.Categorizer, search driving.SearchService) {
	analyzerService = analyzer
	categorizerService = categorizer
	searchService = search
}

// ensureServices builds the default local stack for any service left
// unset: heuristic extraction, in-memory stores, pseudo embeddings.
func ensureServices() error {
	if analyzerService == nil {
		cfg := domain.DefaultAnalysisConfig()
		if store, err := file.NewConfigStore(""); err == nil {
			if loaded, loadErr := store.Load(); loadErr == nil {
				cfg = *loaded
			}
		}
		analyzerService = services.NewAnalyzerService(extract.New(), memory.NewResultStore(), cfg)
	}
	if categorizerService == nil {
		categorizerService = services.NewCategorizerService()
	}
	if searchService == nil {
		searchService = services.NewSearchIndexService(memory.NewIndexStore(), defaultEmbedder())
	}

	if dataDirFlag != "" && ruleStore == nil {
		store, err := sqlite.NewStore(dataDirFlag)
		if err != nil {
			return fmt.Errorf("opening rule store: %w", err)
		}
		ruleStore = store

		bag, err := store.LoadBag(context.Background())
		switch {
		case err == nil:
			if impErr := categorizerService.ImportRules(bag); impErr != nil {
				logger.Warn("Persisted rules rejected, keeping defaults: %v", impErr)
			} else {
				logger.Debug("Loaded %d persisted rules from %s", len(bag.Rules), store.Path())
			}
		case errors.Is(err, domain.ErrNotFound):
			// Fresh store, keep the default rule set.
		default:
			logger.Warn("Loading persisted rules failed: %v", err)
		}
	}

	if rulesFileFlag != "" {
		count, err := rules.LoadFile(rulesFileFlag, categorizerService)
		if err != nil {
			return fmt.Errorf("loading rule file: %w", err)
		}
		logger.Info("Loaded %d rules from %s", count, rulesFileFlag)
	}
	return nil
}

// persistRules writes the active rule set through the rule store, so
// rule mutations survive process restarts. A no-op without --data-dir.
func persistRules(ctx context.Context) error {
	if ruleStore == nil || categorizerService == nil {
		return nil
	}
	if err := ruleStore.SaveBag(ctx, categorizerService.ExportRules()); err != nil {
		return fmt.Errorf("persisting rules: %w", err)
	}
	return nil
}

// defaultEmbedder prefers a local Ollama server when DOCMIND_OLLAMA_URL
// is set, falling back to deterministic pseudo embeddings.
func defaultEmbedder() driven.Embedder {
	if url := os.Getenv("DOCMIND_OLLAMA_URL"); url != "" {
		e := ollama.NewEmbedder(ollama.Config{
			BaseURL: url,
			Model:   os.Getenv("DOCMIND_OLLAMA_MODEL"),
		})
		if err := e.Ping(context.Background()); err != nil {
			logger.Warn("ollama unreachable at %s, using pseudo embeddings: %v", url, err)
			return pseudo.NewEmbedder(0)
		}
		logger.Debug("using ollama embeddings (%s)", e.ModelName())
		return e
	}
	return pseudo.NewEmbedder(0)
}
