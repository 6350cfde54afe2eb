/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

var maintainerNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func maintainerResult(t *testing.T, maintainers []vet.Maintainer) vet.CheckResult {
	t.Helper()

	check := NewMaintainerCheck()
	check.now = func() time.Time { return maintainerNow }

	result, err := check.Analyze(context.Background(), &vet.PackageMetadata{
		Identity:    vet.PackageIdentity{Ecosystem: "pypi", Name: "somepkg"},
		Maintainers: maintainers,
	})
	require.NoError(t, err)
	return result
}

func TestMaintainerNone(t *testing.T) {
	result := maintainerResult(t, nil)

	assert.Contains(t, findingIDs(result), "maintainer_missing")
	assert.InDelta(t, 2.0, result.RiskScore, 1e-9)
}

func TestMaintainerEstablished(t *testing.T) {
	created := maintainerNow.AddDate(-5, 0, 0)
	count := 12

	result := maintainerResult(t, []vet.Maintainer{{
		Username:       "longtimer",
		Email:          "longtimer@example.com",
		AccountCreated: &created,
		PackageCount:   &count,
	}})

	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Findings)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
}

func TestMaintainerDisposableEmail(t *testing.T) {
	result := maintainerResult(t, []vet.Maintainer{{
		Username: "sketchy",
		Email:    "sketchy@mailinator.com",
	}})

	assert.Contains(t, findingIDs(result), "maintainer_suspicious_email")
	assert.InDelta(t, 2.5, result.RiskScore, 1e-9)
}

func TestMaintainerYoungAccount(t *testing.T) {
	created := maintainerNow.AddDate(0, -2, 0)

	result := maintainerResult(t, []vet.Maintainer{{
		Username:       "newbie",
		AccountCreated: &created,
	}})

	assert.Contains(t, findingIDs(result), "maintainer_young_account")
}

func TestMaintainerAccountJustOverAYear(t *testing.T) {
	created := maintainerNow.AddDate(-1, 0, -1)

	result := maintainerResult(t, []vet.Maintainer{{
		Username:       "onyx",
		AccountCreated: &created,
	}})

	assert.NotContains(t, findingIDs(result), "maintainer_young_account")
}

func TestMaintainerPackageCountExtremes(t *testing.T) {
	zero, many := 0, 120

	result := maintainerResult(t, []vet.Maintainer{
		{Username: "empty", PackageCount: &zero},
		{Username: "flood", PackageCount: &many},
	})

	ids := findingIDs(result)
	assert.Contains(t, ids, "maintainer_no_packages")
	assert.Contains(t, ids, "maintainer_many_packages")
}

func TestMaintainerSignalsAccumulate(t *testing.T) {
	created := maintainerNow.AddDate(0, -1, 0)

	result := maintainerResult(t, []vet.Maintainer{{
		Username:       "burner",
		Email:          "burner@yopmail.com",
		AccountCreated: &created,
	}})

	// disposable email + young account
	assert.InDelta(t, 4.0, result.RiskScore, 1e-9)
	assert.Len(t, result.Findings, 2)
}
