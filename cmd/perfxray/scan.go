package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NickCirv/perf-x-ray/pkg/enum"
	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/report"
	"github.com/NickCirv/perf-x-ray/pkg/rule"
	"github.com/NickCirv/perf-x-ray/pkg/sarif"
	"github.com/NickCirv/perf-x-ray/pkg/scanner"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// errFindings signals a clean run that found issues; main maps it to the
// "findings exist" exit code without printing an error.
var errFindings = errors.New("findings detected")

var (
	scanFormat      string
	scanMinSeverity string
	scanIgnore      string
	scanRulesPath   string
	scanMaxFileSize int64
	scanNoGitignore bool
	scanTopFiles    int
	scanColor       string
)

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan a directory tree for performance anti-patterns",
	Long:  "Walk a source tree, match the rule catalog against every supported file, and report findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", report.FormatText, "Output format: text, json, markdown, sarif")
	scanCmd.Flags().StringVar(&scanMinSeverity, "min-severity", "low", "Severity floor: low, medium, high, critical")
	scanCmd.Flags().StringVar(&scanIgnore, "ignore", "", "Extra file/directory names to skip (comma-separated)")
	scanCmd.Flags().StringVar(&scanRulesPath, "rules", "", "YAML file with extra rules, appended after the builtins")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to scan (bytes)")
	scanCmd.Flags().BoolVar(&scanNoGitignore, "no-gitignore", false, "Do not honor .gitignore in the scan root")
	scanCmd.Flags().IntVar(&scanTopFiles, "top", report.DefaultTopFiles, "Entries in the top-files list")
	scanCmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	rules, err := loadRules(scanRulesPath)
	if err != nil {
		return err
	}
	engine, err := matcher.New(rules)
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	minSeverity := types.ParseSeverity(scanMinSeverity)

	var findings []*types.Finding
	if info.IsDir() {
		paths, err := enum.Discover(enum.Config{
			Root:         target,
			IgnoreNames:  splitNames(scanIgnore),
			MaxFileSize:  scanMaxFileSize,
			UseGitignore: !scanNoGitignore,
		})
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		if len(paths) == 0 {
			log.Info().Str("root", target).Msg("no matching files found")
		}

		agg := scanner.New(engine, log)
		findings, err = agg.ScanAll(context.Background(), paths, scanner.FileProvider, minSeverity)
		if err != nil {
			return fmt.Errorf("scanning: %w", err)
		}
	} else {
		// A single file passed directly has no batch to fall back on, so
		// a failed read is an operational error, not a silent skip.
		content, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("reading %s: %w", target, err)
		}
		findings = scanner.Filter(engine.Scan(target, content), minSeverity)
	}

	if err := renderFindings(cmd, rules, findings); err != nil {
		return err
	}
	if len(findings) > 0 {
		return errFindings
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// loadRules assembles the effective catalog: builtins plus an optional user
// rules file, validated as a whole before any scanning starts.
func loadRules(extraPath string) ([]types.Rule, error) {
	rules := rule.Builtin()
	if extraPath != "" {
		extra, err := rule.LoadFile(extraPath)
		if err != nil {
			return nil, fmt.Errorf("loading rules: %w", err)
		}
		rules, err = rule.Merge(rules, extra)
		if err != nil {
			return nil, err
		}
	}
	if err := rule.Validate(rules); err != nil {
		return nil, fmt.Errorf("invalid rule catalog: %w", err)
	}
	return rules, nil
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func renderFindings(cmd *cobra.Command, rules []types.Rule, findings []*types.Finding) error {
	if scanFormat == "sarif" {
		rep := sarif.New(rules)
		for _, f := range findings {
			rep.Add(f)
		}
		data, err := rep.ToJSON()
		if err != nil {
			return fmt.Errorf("serializing SARIF: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	return report.Render(cmd.OutOrStdout(), findings, report.Options{
		Format:   scanFormat,
		Color:    scanColor,
		TopFiles: scanTopFiles,
	})
}
