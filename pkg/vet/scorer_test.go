/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEmptyResults(t *testing.T) {
	scorer := NewRiskScorer(nil)

	score := scorer.Calculate(nil)

	assert.Zero(t, score.Total)
	assert.Zero(t, score.Confidence)
	assert.Empty(t, score.Breakdown)
	assert.Empty(t, score.Flags)
}

func TestCalculateSingleResult(t *testing.T) {
	scorer := NewRiskScorer(map[string]float64{"typosquat": 2.0})

	score := scorer.Calculate([]CheckResult{
		{Check: "typosquat", RiskScore: 5.0, Confidence: 1.0},
	})

	// one result: the weighted average is the score itself
	assert.InDelta(t, 5.0, score.Total, 1e-9)
	assert.InDelta(t, 1.0, score.Confidence, 1e-9)
	assert.InDelta(t, 10.0, score.Breakdown["typosquat"], 1e-9)
}

func TestCalculateZeroConfidenceCarriesNoWeight(t *testing.T) {
	scorer := NewRiskScorer(map[string]float64{"a": 1.0, "b": 1.0})

	score := scorer.Calculate([]CheckResult{
		{Check: "a", RiskScore: 10.0, Confidence: 0},
		{Check: "b", RiskScore: 2.0, Confidence: 1.0},
	})

	assert.InDelta(t, 2.0, score.Total, 1e-9)
	assert.InDelta(t, 0.5, score.Confidence, 1e-9)
}

func TestCalculateAllZeroConfidence(t *testing.T) {
	scorer := NewRiskScorer(nil)

	score := scorer.Calculate([]CheckResult{
		{Check: "a", RiskScore: 10.0, Confidence: 0},
	})

	assert.Zero(t, score.Total)
	assert.Zero(t, score.Confidence)
}

func TestCalculateClampsOutOfRangeScores(t *testing.T) {
	scorer := NewRiskScorer(map[string]float64{"a": 100.0})

	score := scorer.Calculate([]CheckResult{
		{Check: "a", RiskScore: 5000.0, Confidence: 1.0},
	})

	assert.LessOrEqual(t, score.Total, 10.0)
	assert.GreaterOrEqual(t, score.Total, 0.0)
}

func TestCalculateMissingWeightDefaultsToOne(t *testing.T) {
	scorer := NewRiskScorer(map[string]float64{})

	score := scorer.Calculate([]CheckResult{
		{Check: "something_new", RiskScore: 4.0, Confidence: 1.0},
	})

	assert.InDelta(t, 4.0, score.Total, 1e-9)
	assert.InDelta(t, 4.0, score.Breakdown["something_new"], 1e-9)
}

func TestCalculateFlagsCriticalFindings(t *testing.T) {
	scorer := NewRiskScorer(nil)

	score := scorer.Calculate([]CheckResult{
		{
			Check:      "behavior",
			RiskScore:  9.0,
			Confidence: 0.7,
			Findings: []Finding{
				{ID: "x", Title: "Data exfiltration", Severity: SeverityCritical},
				{ID: "y", Title: "Mild smell", Severity: SeverityLow},
			},
		},
	})

	require.Len(t, score.Flags, 1)
	assert.Equal(t, "CRITICAL: Data exfiltration (behavior)", score.Flags[0])
}

func TestGenerateRecommendationsTiers(t *testing.T) {
	scorer := NewRiskScorer(nil)

	cases := []struct {
		risk     Severity
		expected string
	}{
		{SeverityCritical, "DO NOT INSTALL: Critical security risks detected"},
		{SeverityHigh, "Review all findings carefully before installing"},
		{SeverityMedium, "Review findings and verify package legitimacy"},
		{SeverityLow, "Package appears safe, but always review dependencies"},
		{SeverityUnknown, "Package appears safe, but always review dependencies"},
	}

	for _, tc := range cases {
		recs := scorer.GenerateRecommendations(&Verdict{OverallRisk: tc.risk})
		require.NotEmpty(t, recs, "risk %s", tc.risk)
		assert.Equal(t, tc.expected, recs[0])
	}
}

func TestGenerateRecommendationsIncludesRemediationsDeduped(t *testing.T) {
	scorer := NewRiskScorer(nil)

	v := &Verdict{
		OverallRisk: SeverityMedium,
		Results: []CheckResult{
			{
				Check: "typosquat",
				Findings: []Finding{
					{ID: "a", Remediation: "Confirm the intended package name"},
					{ID: "b", Remediation: "Confirm the intended package name"},
					{ID: "c"}, // no remediation, no entry
				},
			},
		},
	}

	recs := scorer.GenerateRecommendations(v)

	require.Len(t, recs, 2)
	assert.Equal(t, "Review findings and verify package legitimacy", recs[0])
	assert.Equal(t, "typosquat: Confirm the intended package name", recs[1])
}
