package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	similarThreshold float64
	similarLimit     int
)

var similarCmd = &cobra.Command{
	Use:   "similar [document-id]",
	Short: "Find documents similar to one in the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().Float64Var(&similarThreshold, "threshold", 0.7, "minimum similarity score")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.FindSimilar(context.Background(), args[0], domain.SimilarityOptions{
		Threshold: similarThreshold,
		Limit:     similarLimit,
	})
	if err != nil {
		return fmt.Errorf("similarity search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No similar documents found.")
		return nil
	}

	for i := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, results[i].Title, results[i].RelevanceScore)
	}
	return nil
}
