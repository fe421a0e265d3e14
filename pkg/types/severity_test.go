package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Equal(t, 0, SeverityLow.Rank())
	assert.Equal(t, 1, SeverityMedium.Rank())
	assert.Equal(t, 2, SeverityHigh.Rank())
	assert.Equal(t, 3, SeverityCritical.Rank())
}

func TestSeverity_RankOrder(t *testing.T) {
	// The four values form a strict total order.
	for i := 1; i < len(Severities); i++ {
		assert.Greater(t, Severities[i].Rank(), Severities[i-1].Rank())
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		raw  string
		want Severity
	}{
		{"low", SeverityLow},
		{"medium", SeverityMedium},
		{"high", SeverityHigh},
		{"critical", SeverityCritical},
		{"HIGH", SeverityHigh},
		{"  Critical ", SeverityCritical},
		{"", SeverityLow},
		{"bogus", SeverityLow},
		{"warning", SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.raw))
		})
	}
}
