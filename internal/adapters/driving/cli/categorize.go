package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var categorizeTags bool

var categorizeCmd = &cobra.Command{
	Use:   "categorize [file]",
	Short: "Categorize a document",
	Long: `Scores a document against the rule engine and reports the winning
category with confidence, reasoning, and runner-up alternatives.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().BoolVar(&categorizeTags, "tags", false, "also suggest tags")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	if categorizerService == nil {
		return errors.New("categorizer service not configured")
	}

	path := args[0]
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	suggestion, err := categorizerService.Categorize(ctx, doc.Content, filepath.Base(path), nil)
	if err != nil {
		return fmt.Errorf("categorization failed: %w", err)
	}

	cmd.Printf("Category: %s", suggestion.Category.Primary)
	if suggestion.Category.Secondary != "" {
		cmd.Printf(" / %s", suggestion.Category.Secondary)
	}
	cmd.Printf(" (%.2f)\n", suggestion.Confidence)

	for _, reason := range suggestion.Reasoning {
		cmd.Printf("  - %s\n", reason)
	}
	if len(suggestion.Alternatives) > 0 {
		cmd.Println("Alternatives:")
		for _, alt := range suggestion.Alternatives {
			cmd.Printf("  %s (%.2f)\n", alt.Category.Primary, alt.Confidence)
		}
	}

	if categorizeTags {
		tagging, err := categorizerService.GenerateTags(ctx, doc.Content, &suggestion.Category, nil)
		if err != nil {
			return fmt.Errorf("tag generation failed: %w", err)
		}
		cmd.Println("Tags:")
		for _, tag := range tagging.SuggestedTags {
			cmd.Printf("  %s (%.2f, %s)\n", tag.Tag, tag.Confidence, tag.Source)
		}
	}

	return nil
}
