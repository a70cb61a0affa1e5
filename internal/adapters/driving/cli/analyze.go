package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a document",
	Long: `Runs the full analysis pipeline over a document: classification,
entity extraction, insight generation, PII detection, and metadata
synthesis. Results for identical content are served from cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzerService == nil {
		return errors.New("analyzer service not configured")
	}

	path := args[0]
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	result, err := analyzerService.Analyze(context.Background(), []byte(doc.Content), filepath.Base(path), "")
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAnalysis(cmd, result)
	return nil
}

func printAnalysis(cmd *cobra.Command, result *domain.AnalysisResult) {
	cmd.Printf("Category:    %s", result.Category.Primary)
	if result.Category.Secondary != "" {
		cmd.Printf(" / %s", result.Category.Secondary)
	}
	cmd.Printf(" (%.2f)\n", result.Confidence)
	cmd.Printf("Importance:  %s\n", result.Importance)
	cmd.Printf("Sensitivity: %s\n", result.Sensitivity)

	if result.Metadata.Title != "" {
		cmd.Printf("Title:       %s\n", result.Metadata.Title)
	}

	if len(result.KeyInformation.Dates) > 0 {
		cmd.Println("\nDates:")
		for _, date := range result.KeyInformation.Dates {
			cmd.Printf("  %s (%s)\n", date.Value.Format("2006-01-02"), date.Kind)
		}
	}
	if len(result.KeyInformation.Amounts) > 0 {
		cmd.Println("\nAmounts:")
		for _, amount := range result.KeyInformation.Amounts {
			cmd.Printf("  %s%.2f\n", amount.Currency, amount.Value)
		}
	}
	if len(result.Insights) > 0 {
		cmd.Println("\nInsights:")
		for _, insight := range result.Insights {
			marker := " "
			if insight.ActionRequired {
				marker = "!"
			}
			cmd.Printf("  [%s] %s: %s\n", marker, insight.Title, insight.Description)
		}
	}
	if len(result.PIIDetected) > 0 {
		cmd.Println("\nPII detected:")
		for _, pii := range result.PIIDetected {
			cmd.Printf("  %s: %s (%.2f)\n", pii.Type, pii.Content, pii.Confidence)
		}
	}
	if len(result.Tags) > 0 {
		cmd.Printf("\nTags: %v\n", result.Tags)
	}
}
