/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MetadataSource supplies package metadata when the caller does not provide
// it, typically backed by a registry client.
type MetadataSource interface {
	PackageMetadata(ctx context.Context, id PackageIdentity) (*PackageMetadata, error)
}

// Interrogator runs the active check set against one package and aggregates
// the results. It holds no state between calls; concurrent Interrogate
// calls for different packages are independent.
type Interrogator struct {
	checks []Check
	scorer *RiskScorer
	source MetadataSource
	log    logrus.FieldLogger
}

// Option configures an Interrogator.
type Option func(*Interrogator)

// WithMetadataSource sets the source used when Interrogate is called
// without metadata.
func WithMetadataSource(src MetadataSource) Option {
	return func(it *Interrogator) { it.source = src }
}

// WithScorer replaces the default-weight scorer.
func WithScorer(s *RiskScorer) Option {
	return func(it *Interrogator) { it.scorer = s }
}

// WithLogger sets the logger used for per-check progress and failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(it *Interrogator) { it.log = log }
}

// NewInterrogator builds an interrogator over the given check set. The
// order of checks determines the order of results in every verdict.
func NewInterrogator(checks []Check, opts ...Option) *Interrogator {
	it := &Interrogator{
		checks: checks,
		scorer: NewRiskScorer(nil),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Interrogate runs every active check against the package and returns the
// aggregated verdict. When md is nil the metadata is fetched from the
// configured source. Check failures never surface as errors: they become
// zero-confidence results inside the verdict. The only returned errors are
// contract misuse (empty identity, no metadata and no source) and metadata
// fetch failures.
func (it *Interrogator) Interrogate(ctx context.Context, id PackageIdentity, md *PackageMetadata) (*Verdict, error) {
	if id.Name == "" {
		return nil, errors.New("package identity must have a name")
	}

	if md == nil {
		if it.source == nil {
			return nil, errors.New("no metadata provided and no metadata source configured")
		}
		fetched, err := it.source.PackageMetadata(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching metadata for %s: %w", id, err)
		}
		md = fetched
	}

	results := make([]CheckResult, len(it.checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range it.checks {
		i, c := i, c
		g.Go(func() error {
			results[i] = it.runCheck(gctx, c, md)
			return nil
		})
	}
	_ = g.Wait()

	score := it.scorer.Calculate(results)

	verdict := &Verdict{
		ID:          uuid.NewString(),
		Package:     id,
		OverallRisk: SeverityForScore(score.Total),
		RiskScore:   score.Total,
		Confidence:  score.Confidence,
		Results:     results,
		Flags:       score.Flags,
		GeneratedAt: time.Now().UTC(),
	}
	verdict.Recommendations = it.scorer.GenerateRecommendations(verdict)

	return verdict, nil
}

// runCheck executes one check with full fault isolation: errors and panics
// are converted into a synthetic zero-confidence result.
func (it *Interrogator) runCheck(ctx context.Context, c Check, md *PackageMetadata) (result CheckResult) {
	name := c.Name()

	defer func() {
		if r := recover(); r != nil {
			it.log.WithField("check", name).Warnf("check panicked: %v", r)
			result = failedCheckResult(name, fmt.Errorf("panic: %v", r))
		}
	}()

	it.log.WithField("check", name).Debugf("analyzing %s", md.Identity)

	result, err := c.Analyze(ctx, md)
	if err != nil {
		it.log.WithField("check", name).Warnf("check failed: %v", err)
		return failedCheckResult(name, err)
	}

	if result.Check == "" {
		result.Check = name
	}
	result.RiskScore = clampScore(result.RiskScore)

	return result
}

func failedCheckResult(name string, err error) CheckResult {
	return CheckResult{
		Check:      name,
		RiskScore:  0,
		Confidence: 0,
		Findings: []Finding{{
			ID:          name + "_error",
			Title:       "Check could not be completed",
			Description: err.Error(),
			Severity:    SeverityUnknown,
		}},
		Diagnostics: map[string]any{
			"error":   true,
			"message": err.Error(),
		},
	}
}
