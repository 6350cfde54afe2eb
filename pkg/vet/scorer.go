/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import "fmt"

// DefaultWeights is the built-in per-check weight table. A check whose name
// is missing from the active table weighs 1.0.
var DefaultWeights = map[string]float64{
	"behavior":      3.0,
	"typosquat":     2.5,
	"install_hooks": 2.0,
	"maintainer":    1.5,
	"metadata":      1.0,
}

// RiskScorer converts a set of raw check results into one normalized score.
type RiskScorer struct {
	weights map[string]float64
}

// NewRiskScorer returns a scorer using the given weight table, or
// DefaultWeights when weights is nil.
func NewRiskScorer(weights map[string]float64) *RiskScorer {
	if weights == nil {
		weights = DefaultWeights
	}
	return &RiskScorer{weights: weights}
}

// RiskScore is the aggregate produced by Calculate.
type RiskScore struct {
	// Total is the normalized overall score in [0,10].
	Total float64

	// Confidence is the mean of the individual check confidences.
	Confidence float64

	// Breakdown maps check name to its weighted contribution.
	Breakdown map[string]float64

	// Flags surfaces individually critical findings so they are never
	// hidden by averaging.
	Flags []string
}

// Calculate aggregates check results. It is total: empty or degraded input
// yields the zero-value score, never an error. A result with confidence 0
// stays visible to the caller but carries no weight here.
func (s *RiskScorer) Calculate(results []CheckResult) RiskScore {
	score := RiskScore{Breakdown: map[string]float64{}}

	if len(results) == 0 {
		return score
	}

	var weightedSum, weightSum, confidenceSum float64
	for _, r := range results {
		weight := s.weightFor(r.Check)
		effective := weight * r.Confidence

		weightedSum += clampScore(r.RiskScore) * effective
		weightSum += effective
		confidenceSum += r.Confidence

		score.Breakdown[r.Check] = clampScore(r.RiskScore) * weight

		for _, f := range r.Findings {
			if f.Severity == SeverityCritical {
				score.Flags = append(score.Flags, fmt.Sprintf("CRITICAL: %s (%s)", f.Title, r.Check))
			}
		}
	}

	if weightSum > 0 {
		score.Total = clampScore(weightedSum / weightSum)
	}
	score.Confidence = confidenceSum / float64(len(results))

	return score
}

func (s *RiskScorer) weightFor(check string) float64 {
	if w, ok := s.weights[check]; ok {
		return w
	}
	return 1.0
}

// GenerateRecommendations produces the deduplicated recommendation list for
// a verdict: one general recommendation for its severity tier, plus one
// entry per finding that carries remediation text.
func (s *RiskScorer) GenerateRecommendations(v *Verdict) []string {
	var recs []string

	switch v.OverallRisk {
	case SeverityCritical:
		recs = append(recs, "DO NOT INSTALL: Critical security risks detected")
	case SeverityHigh:
		recs = append(recs,
			"Review all findings carefully before installing",
			"Consider using an alternative package")
	case SeverityMedium:
		recs = append(recs, "Review findings and verify package legitimacy")
	default:
		recs = append(recs, "Package appears safe, but always review dependencies")
	}

	for _, r := range v.Results {
		for _, f := range r.Findings {
			if f.Remediation == "" {
				continue
			}
			recs = append(recs, fmt.Sprintf("%s: %s", r.Check, f.Remediation))
		}
	}

	return dedupePreservingOrder(recs)
}

func dedupePreservingOrder(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
