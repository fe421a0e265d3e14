package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog",
	Long:  "Print every rule in the effective catalog: builtins plus any extra rules file",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "text", "Output format: text, json")
	rulesCmd.Flags().StringVar(&scanRulesPath, "rules", "", "YAML file with extra rules, appended after the builtins")
}

func runRules(cmd *cobra.Command, args []string) error {
	rules, err := loadRules(scanRulesPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch rulesFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rules)
	case "text":
		fmt.Fprintf(out, "%d rules\n\n", len(rules))
		for _, r := range rules {
			langs := make([]string, len(r.Languages))
			for i, l := range r.Languages {
				langs[i] = string(l)
			}
			fmt.Fprintf(out, "%-22s %-8s [%s] %s\n", r.ID, r.Severity, strings.Join(langs, ","), r.Name)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}
