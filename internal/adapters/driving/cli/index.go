package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	indexID    string
	indexTitle string
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Analyze a document and add it to the search index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexID, "id", "", "document id (defaults to the file name)")
	indexCmd.Flags().StringVar(&indexTitle, "title", "", "document title (defaults to the file name)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if analyzerService == nil || searchService == nil {
		return errors.New("services not configured")
	}

	path := args[0]
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	filename := filepath.Base(path)
	id := indexID
	if id == "" {
		id = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	title := indexTitle
	if title == "" {
		title = doc.Title
	}

	ctx := context.Background()
	analysis, err := analyzerService.Analyze(ctx, []byte(doc.Content), filename, "")
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	metadata := map[string]any{"filename": filename, "format": doc.Format}
	if err := searchService.IndexDocument(ctx, id, title, doc.Content, analysis, metadata); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %s as %s (%s)\n", filename, id, analysis.Category.Primary)
	return nil
}
