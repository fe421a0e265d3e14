package report

import (
	"sort"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// fileCount pairs a file with its finding count.
type fileCount struct {
	file  string
	count int
}

// severityCounts tallies findings per severity.
func severityCounts(findings []*types.Finding) map[types.Severity]int {
	counts := make(map[types.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// topFiles returns up to n files ordered by descending finding count,
// ties broken by path for stable output.
func topFiles(findings []*types.Finding, n int) []fileCount {
	byFile := make(map[string]int)
	for _, f := range findings {
		byFile[f.File]++
	}

	out := make([]fileCount, 0, len(byFile))
	for file, count := range byFile {
		out = append(out, fileCount{file: file, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].file < out[j].file
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// distinctFiles counts the files represented in findings.
func distinctFiles(findings []*types.Finding) int {
	seen := make(map[string]bool)
	for _, f := range findings {
		seen[f.File] = true
	}
	return len(seen)
}

// bySeverity groups findings per severity, preserving emission order
// within each group.
func bySeverity(findings []*types.Finding) map[types.Severity][]*types.Finding {
	groups := make(map[types.Severity][]*types.Finding)
	for _, f := range findings {
		groups[f.Severity] = append(groups[f.Severity], f)
	}
	return groups
}

// descendingSeverities lists severities from critical down to low.
func descendingSeverities() []types.Severity {
	out := make([]types.Severity, len(types.Severities))
	for i, s := range types.Severities {
		out[len(types.Severities)-1-i] = s
	}
	return out
}
