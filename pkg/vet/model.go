/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package vet implements the risk interrogation pipeline: a set of
// pluggable checks run against one package, whose results are aggregated
// into a single weighted verdict.
package vet

import (
	"fmt"
	"time"
)

// PackageIdentity identifies one package version in one ecosystem.
type PackageIdentity struct {
	Ecosystem string `json:"ecosystem"`
	Name      string `json:"name"`
	Version   string `json:"version"`
}

func (p PackageIdentity) String() string {
	if p.Version == "" {
		return fmt.Sprintf("%s/%s", p.Ecosystem, p.Name)
	}
	return fmt.Sprintf("%s/%s@%s", p.Ecosystem, p.Name, p.Version)
}

// Maintainer describes one package maintainer as reported by the registry.
type Maintainer struct {
	Username       string     `json:"username"`
	Email          string     `json:"email,omitempty"`
	ProfileURL     string     `json:"profile_url,omitempty"`
	AccountCreated *time.Time `json:"account_created,omitempty"`
	PackageCount   *int       `json:"package_count,omitempty"`
}

// PackageMetadata holds the descriptive facts about one package version.
// It is owned by the caller and passed read-only to every check.
type PackageMetadata struct {
	Identity      PackageIdentity `json:"identity"`
	Description   string          `json:"description,omitempty"`
	Homepage      string          `json:"homepage,omitempty"`
	Repository    string          `json:"repository,omitempty"`
	License       string          `json:"license,omitempty"`
	Maintainers   []Maintainer    `json:"maintainers,omitempty"`
	Dependencies  []string        `json:"dependencies,omitempty"`
	FirstRelease  *time.Time      `json:"first_release,omitempty"`
	LatestRelease *time.Time      `json:"latest_release,omitempty"`
	DownloadCount int64           `json:"download_count,omitempty"`
}

// Finding is one discrete observation produced by a check. Immutable once
// created.
type Finding struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Evidence    []string `json:"evidence,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
}

// CheckResult is the raw output of one check invocation. Confidence is the
// check's self-reported reliability in [0,1]; 0 means the check could not
// evaluate and must carry zero weight in aggregation, while still appearing
// in the verdict's results.
type CheckResult struct {
	Check       string         `json:"check"`
	RiskScore   float64        `json:"risk_score"`
	Confidence  float64        `json:"confidence"`
	Findings    []Finding      `json:"findings,omitempty"`
	Diagnostics map[string]any `json:"diagnostics,omitempty"`
}

// Verdict is the final aggregated output of one interrogation.
type Verdict struct {
	ID              string          `json:"id"`
	Package         PackageIdentity `json:"package"`
	OverallRisk     Severity        `json:"overall_risk"`
	RiskScore       float64         `json:"risk_score"`
	Confidence      float64         `json:"confidence"`
	Results         []CheckResult   `json:"results"`
	Recommendations []string        `json:"recommendations"`
	Flags           []string        `json:"flags,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
