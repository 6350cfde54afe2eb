/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	name   string
	result CheckResult
	err    error
	panics bool
}

func (c stubCheck) Name() string { return c.name }

func (c stubCheck) Analyze(_ context.Context, _ *PackageMetadata) (CheckResult, error) {
	if c.panics {
		panic("boom")
	}
	return c.result, c.err
}

type stubSource struct {
	md  *PackageMetadata
	err error
}

func (s stubSource) PackageMetadata(_ context.Context, id PackageIdentity) (*PackageMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	md := *s.md
	md.Identity = id
	return &md, nil
}

func testMetadata(name string) *PackageMetadata {
	return &PackageMetadata{
		Identity: PackageIdentity{Ecosystem: "pypi", Name: name, Version: "1.0.0"},
	}
}

func TestInterrogateRequiresName(t *testing.T) {
	it := NewInterrogator(nil)

	_, err := it.Interrogate(context.Background(), PackageIdentity{}, testMetadata("x"))
	assert.Error(t, err)
}

func TestInterrogateRequiresMetadataOrSource(t *testing.T) {
	it := NewInterrogator(nil)

	_, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, nil)
	assert.Error(t, err)
}

func TestInterrogateNoChecks(t *testing.T) {
	it := NewInterrogator(nil)

	v, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)

	assert.Equal(t, SeverityUnknown, v.OverallRisk)
	assert.Zero(t, v.RiskScore)
	assert.Empty(t, v.Results)
	assert.NotEmpty(t, v.ID)
	assert.False(t, v.GeneratedAt.IsZero())
}

func TestInterrogateFailingCheckIsIsolated(t *testing.T) {
	it := NewInterrogator([]Check{
		stubCheck{name: "broken", err: errors.New("backend exploded")},
		stubCheck{name: "fine", result: CheckResult{Check: "fine", RiskScore: 4.0, Confidence: 1.0}},
	})

	v, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)
	require.Len(t, v.Results, 2)

	broken := v.Results[0]
	assert.Equal(t, "broken", broken.Check)
	assert.Zero(t, broken.RiskScore)
	assert.Zero(t, broken.Confidence)
	require.Len(t, broken.Findings, 1)
	assert.Equal(t, "broken_error", broken.Findings[0].ID)
	assert.Equal(t, SeverityUnknown, broken.Findings[0].Severity)

	// the failing check contributed no weight
	assert.InDelta(t, 4.0, v.RiskScore, 1e-9)
}

func TestInterrogatePanickingCheckIsIsolated(t *testing.T) {
	it := NewInterrogator([]Check{
		stubCheck{name: "panicky", panics: true},
		stubCheck{name: "fine", result: CheckResult{Check: "fine", RiskScore: 2.0, Confidence: 1.0}},
	})

	v, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)
	require.Len(t, v.Results, 2)

	assert.Equal(t, "panicky", v.Results[0].Check)
	assert.Zero(t, v.Results[0].Confidence)
	assert.Contains(t, v.Results[0].Findings[0].Description, "panic")
}

func TestInterrogateResultsFollowCheckOrder(t *testing.T) {
	it := NewInterrogator([]Check{
		stubCheck{name: "first", result: CheckResult{Check: "first", Confidence: 1.0}},
		stubCheck{name: "second", result: CheckResult{Check: "second", Confidence: 1.0}},
		stubCheck{name: "third", result: CheckResult{Check: "third", Confidence: 1.0}},
	})

	for i := 0; i < 5; i++ {
		v, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
		require.NoError(t, err)
		require.Len(t, v.Results, 3)
		assert.Equal(t, "first", v.Results[0].Check)
		assert.Equal(t, "second", v.Results[1].Check)
		assert.Equal(t, "third", v.Results[2].Check)
	}
}

func TestInterrogateIsIdempotent(t *testing.T) {
	it := NewInterrogator([]Check{
		stubCheck{name: "c", result: CheckResult{Check: "c", RiskScore: 6.5, Confidence: 0.8}},
	})

	v1, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)
	v2, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)

	assert.Equal(t, v1.RiskScore, v2.RiskScore)
	assert.Equal(t, v1.OverallRisk, v2.OverallRisk)
	assert.Equal(t, v1.Recommendations, v2.Recommendations)
	assert.NotEqual(t, v1.ID, v2.ID)
}

func TestInterrogateFetchesMetadataFromSource(t *testing.T) {
	it := NewInterrogator(
		[]Check{stubCheck{name: "c", result: CheckResult{Check: "c", Confidence: 1.0}}},
		WithMetadataSource(stubSource{md: testMetadata("left-pad")}),
	)

	v, err := it.Interrogate(context.Background(), PackageIdentity{Ecosystem: "pypi", Name: "left-pad"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "left-pad", v.Package.Name)
}

func TestInterrogateSourceErrorSurfaces(t *testing.T) {
	sentinel := errors.New("registry down")
	it := NewInterrogator(nil, WithMetadataSource(stubSource{err: sentinel}))

	_, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestInterrogateClampsCheckScores(t *testing.T) {
	it := NewInterrogator([]Check{
		stubCheck{name: "c", result: CheckResult{Check: "c", RiskScore: 9999, Confidence: 1.0}},
	})

	v, err := it.Interrogate(context.Background(), PackageIdentity{Name: "x"}, testMetadata("x"))
	require.NoError(t, err)

	assert.InDelta(t, 10.0, v.Results[0].RiskScore, 1e-9)
	assert.InDelta(t, 10.0, v.RiskScore, 1e-9)
	assert.Equal(t, SeverityCritical, v.OverallRisk)
}
