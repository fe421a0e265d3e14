package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/scanner"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a single file",
	Long:  "Scan one file and report findings. An unreadable path is an operational error here, unlike during a batch scan.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&scanFormat, "format", "text", "Output format: text, json, markdown, sarif")
	checkCmd.Flags().StringVar(&scanMinSeverity, "min-severity", "low", "Severity floor: low, medium, high, critical")
	checkCmd.Flags().StringVar(&scanRulesPath, "rules", "", "YAML file with extra rules, appended after the builtins")
	checkCmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	rules, err := loadRules(scanRulesPath)
	if err != nil {
		return err
	}
	engine, err := matcher.New(rules)
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	findings := scanner.Filter(engine.Scan(path, content), types.ParseSeverity(scanMinSeverity))
	if err := renderFindings(cmd, rules, findings); err != nil {
		return err
	}
	if len(findings) > 0 {
		return errFindings
	}
	return nil
}
