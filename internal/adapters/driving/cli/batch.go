package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/batch"
	"github.com/custodia-labs/docmind/internal/rules"
)

var (
	batchWorkers int
	batchRate    float64
	batchNoIndex bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Analyze, categorize, and index every document in a directory",
	Long: `Walks a directory and runs each file through the full pipeline on a
bounded worker pool. When --rules-file is set, the rule bag is watched
for the duration of the run, so rule edits apply to documents still in
flight.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size (default: half the CPUs)")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 0, "max documents per second (0 disables throttling)")
	batchCmd.Flags().BoolVar(&batchNoIndex, "no-index", false, "analyze and categorize without indexing")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if analyzerService == nil || categorizerService == nil {
		return errors.New("services not configured")
	}

	docs, err := collectBatchDocs(args[0])
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("No documents found")
		return nil
	}

	search := searchService
	if batchNoIndex {
		search = nil
	}

	opts := []batch.Option{batch.WithNormalisers(normaliserRegistry)}
	if batchWorkers > 0 {
		opts = append(opts, batch.WithPoolSize(batchWorkers))
	}
	if batchRate > 0 {
		opts = append(opts, batch.WithRateLimit(batchRate, 1))
	}

	pipeline, err := batch.NewPipeline(analyzerService, categorizerService, search, opts...)
	if err != nil {
		return fmt.Errorf("starting batch pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if rulesFileFlag != "" {
		watcher, err := rules.NewWatcher(rulesFileFlag, categorizerService)
		if err != nil {
			return fmt.Errorf("watching rule file: %w", err)
		}
		go func() { _ = watcher.Start(ctx) }()
	}

	report, err := pipeline.Process(ctx, docs)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	cmd.Printf("Processed %d documents, %d failed\n", report.Processed, report.Failed)
	for _, result := range report.Results {
		if result.Err != nil {
			cmd.Printf("  %s: %v\n", result.DocumentID, result.Err)
		}
	}
	return nil
}

// collectBatchDocs gathers every regular file under dir, skipping
// hidden files and directories. Document IDs are extension-stripped
// paths relative to dir.
func collectBatchDocs(dir string) ([]batch.Document, error) {
	var docs []batch.Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = d.Name()
		}

		docs = append(docs, batch.Document{
			ID:       strings.TrimSuffix(rel, filepath.Ext(rel)),
			Filename: d.Name(),
			Content:  data,
			Metadata: map[string]any{"filename": d.Name(), "path": path},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return docs, nil
}
