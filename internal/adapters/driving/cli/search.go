package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchCategory string
	searchSortBy   string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Searches the document index with query enhancement, field-weighted
relevance scoring, filtering, and faceting.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "restrict to a primary category")
	searchCmd.Flags().StringVar(&searchSortBy, "sort", "relevance", "sort key (relevance, date, importance, title)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := domain.SmartSearchQuery{
		Query:  args[0],
		Limit:  searchLimit,
		SortBy: domain.SortKey(searchSortBy),
	}
	if searchCategory != "" {
		category := domain.PrimaryCategory(searchCategory)
		if !category.IsValid() {
			return fmt.Errorf("unknown category %q", searchCategory)
		}
		query.Filters.Categories = []domain.PrimaryCategory{category}
	}

	results, err := searchService.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if results.TotalResults == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d total, %s):\n\n", results.TotalResults, results.Took)
	for i := range results.Results {
		result := &results.Results[i]
		title := result.Title
		if title == "" {
			title = result.DocumentID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, result.RelevanceScore)
		cmd.Printf("      Category: %s\n", result.Category.Primary)
		if len(result.Excerpts) > 0 {
			cmd.Printf("      %s\n", result.Excerpts[0])
		}
		cmd.Println()
	}

	return nil
}
