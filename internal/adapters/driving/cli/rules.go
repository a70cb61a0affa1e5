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

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage categorization rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if categorizerService == nil {
			return errors.New("categorizer service not configured")
		}
		rules := categorizerService.Rules()
		for _, rule := range rules {
			state := "enabled"
			if !rule.Enabled {
				state = "disabled"
			}
			cmd.Printf("  %s  %s -> %s (v%d, %s)\n", rule.ID, rule.Name, rule.Target.Primary, rule.Version, state)
		}
		cmd.Printf("%d rules\n", len(rules))
		return nil
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove [rule-id]",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if categorizerService == nil {
			return errors.New("categorizer service not configured")
		}
		if err := categorizerService.RemoveRule(args[0]); err != nil {
			return fmt.Errorf("removing rule: %w", err)
		}
		if err := persistRules(context.Background()); err != nil {
			return err
		}
		cmd.Printf("Removed rule %s\n", args[0])
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add [rule.json]",
	Short: "Add a rule from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if categorizerService == nil {
			return errors.New("categorizer service not configured")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading rule file: %w", err)
		}
		var rule domain.CategoryRule
		if err := json.Unmarshal(data, &rule); err != nil {
			return fmt.Errorf("parsing rule file: %w", err)
		}
		if err := categorizerService.AddRule(rule); err != nil {
			return fmt.Errorf("adding rule: %w", err)
		}
		if err := persistRules(context.Background()); err != nil {
			return err
		}
		cmd.Printf("Added rule %s\n", rule.Name)
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export [file.json]",
	Short: "Export the rule set to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if categorizerService == nil {
			return errors.New("categorizer service not configured")
		}
		bag := categorizerService.ExportRules()
		data, err := json.MarshalIndent(bag, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling rules: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0600); err != nil {
			return fmt.Errorf("writing rule file: %w", err)
		}
		cmd.Printf("Exported %d rules to %s\n", len(bag.Rules), args[0])
		return nil
	},
}

var rulesImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Replace the rule set from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if categorizerService == nil {
			return errors.New("categorizer service not configured")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading rule file: %w", err)
		}
		var bag domain.RuleBag
		if err := json.Unmarshal(data, &bag); err != nil {
			return fmt.Errorf("parsing rule file: %w", err)
		}
		if err := categorizerService.ImportRules(&bag); err != nil {
			return fmt.Errorf("importing rules: %w", err)
		}
		if err := persistRules(context.Background()); err != nil {
			return err
		}
		cmd.Printf("Imported %d rules\n", len(bag.Rules))
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rulesCmd.AddCommand(rulesImportCmd)
	rootCmd.AddCommand(rulesCmd)
}
