package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var trainCmd = &cobra.Command{
	Use:   "train [dataset.json]",
	Short: "Evaluate the rule engine against a labeled dataset",
	Long: `Replays labeled samples through the categorizer and reports
exact-match accuracy on the primary category with a confusion tally.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	if categorizerService == nil {
		return errors.New("categorizer service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}

	var samples []domain.LabeledSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}

	report, err := categorizerService.TrainOnDataset(context.Background(), samples)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	cmd.Printf("Samples:  %d\n", report.Samples)
	cmd.Printf("Correct:  %d\n", report.Correct)
	cmd.Printf("Accuracy: %.1f%%\n", report.Accuracy*100)
	if len(report.Confusions) > 0 {
		cmd.Println("Confusions:")
		for pair, count := range report.Confusions {
			cmd.Printf("  %s: %d\n", pair, count)
		}
	}
	return nil
}
