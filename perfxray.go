// Package perfxray provides offline static pattern-matching over source
// trees to flag known performance anti-patterns.
//
// The scanner matches textual patterns only; it never builds an AST or type
// model, with the false-positive/false-negative tradeoffs that implies.
//
// # Basic Usage
//
// Create a scanner with the builtin catalog and scan a tree:
//
//	xray, err := perfxray.NewScanner()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	findings, err := xray.ScanTree(context.Background(), "./src", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, f := range findings {
//	    fmt.Printf("%s:%d %s\n", f.File, f.Line, f.RuleName)
//	}
package perfxray

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/NickCirv/perf-x-ray/pkg/enum"
	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/rule"
	"github.com/NickCirv/perf-x-ray/pkg/scanner"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Re-export commonly used types so callers can import just
// "github.com/NickCirv/perf-x-ray" without subpackages.
type (
	// Rule defines a detection pattern for a performance anti-pattern.
	Rule = types.Rule

	// Finding is one concrete match of a rule against a file/line.
	Finding = types.Finding

	// Severity is the totally ordered low..critical enumeration.
	Severity = types.Severity

	// Language is the canonical tag pairing files with rules.
	Language = types.Language
)

// Re-export severity constants.
const (
	SeverityLow      = types.SeverityLow
	SeverityMedium   = types.SeverityMedium
	SeverityHigh     = types.SeverityHigh
	SeverityCritical = types.SeverityCritical
)

// Scanner ties the rule catalog, match engine, and aggregator together.
type Scanner struct {
	engine *matcher.Engine
	agg    *scanner.Aggregator
	config *scannerConfig
}

type scannerConfig struct {
	rules       []types.Rule
	extraFile   string
	minSeverity types.Severity
	logger      zerolog.Logger
}

// Option configures a Scanner.
type Option func(*scannerConfig)

// WithRules replaces the builtin catalog with a custom rule set.
func WithRules(rules []Rule) Option {
	return func(c *scannerConfig) {
		c.rules = rules
	}
}

// WithExtraRulesFile appends rules from a YAML file after the builtins.
func WithExtraRulesFile(path string) Option {
	return func(c *scannerConfig) {
		c.extraFile = path
	}
}

// WithMinSeverity sets the severity floor applied to scan results.
// Default is SeverityLow, i.e. no filtering.
func WithMinSeverity(s Severity) Option {
	return func(c *scannerConfig) {
		c.minSeverity = s
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *scannerConfig) {
		c.logger = logger
	}
}

// NewScanner creates a Scanner. Every pattern in the effective rule set is
// compiled here; a malformed rule is a construction-time error, never a
// per-file one.
func NewScanner(opts ...Option) (*Scanner, error) {
	config := &scannerConfig{
		minSeverity: types.SeverityLow,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.rules == nil {
		config.rules = rule.Builtin()
	}
	if config.extraFile != "" {
		extra, err := rule.LoadFile(config.extraFile)
		if err != nil {
			return nil, fmt.Errorf("loading extra rules: %w", err)
		}
		merged, err := rule.Merge(config.rules, extra)
		if err != nil {
			return nil, err
		}
		config.rules = merged
	}
	if err := rule.Validate(config.rules); err != nil {
		return nil, fmt.Errorf("invalid rule catalog: %w", err)
	}

	engine, err := matcher.New(config.rules)
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}

	return &Scanner{
		engine: engine,
		agg:    scanner.New(engine, config.logger),
		config: config,
	}, nil
}

// ScanContent scans in-memory content as if it were the file at path.
// The path picks which rules apply through its extension.
func (s *Scanner) ScanContent(path string, content []byte) []*Finding {
	return scanner.Filter(s.engine.Scan(path, content), s.config.minSeverity)
}

// ScanString scans a string as if it were the file at path.
func (s *Scanner) ScanString(path, content string) []*Finding {
	return s.ScanContent(path, []byte(content))
}

// ScanFile reads and scans a single file. Unlike a batch scan, a read
// failure here is surfaced to the caller: there is no batch to fall back on.
func (s *Scanner) ScanFile(path string) ([]*Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.ScanContent(path, content), nil
}

// ScanTree discovers candidate files under root and scans them all.
// Unreadable files inside the batch are skipped, never fatal.
func (s *Scanner) ScanTree(ctx context.Context, root string, ignoreNames []string) ([]*Finding, error) {
	paths, err := enum.Discover(enum.Config{
		Root:         root,
		IgnoreNames:  ignoreNames,
		UseGitignore: true,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	return s.agg.ScanAll(ctx, paths, scanner.FileProvider, s.config.minSeverity)
}

// Rules returns a copy of the effective rule set in catalog order.
func (s *Scanner) Rules() []Rule {
	return s.engine.Rules()
}

// RuleCount returns the number of loaded rules.
func (s *Scanner) RuleCount() int {
	return s.engine.RuleCount()
}
