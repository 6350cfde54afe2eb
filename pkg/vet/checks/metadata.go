/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package checks contains the built-in risk checks that plug into the
// interrogation pipeline.
package checks

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// osiLicenseMarkers identify commonly used OSI-approved license families.
var osiLicenseMarkers = []string{
	"apache", "mit", "bsd", "gpl", "lgpl", "mpl", "isc", "unlicense", "zlib", "epl",
}

// MetadataCheck scores how complete and plausible the package's descriptive
// metadata is. Sparse metadata is a weak but cheap risk signal.
type MetadataCheck struct{}

func (MetadataCheck) Name() string { return "metadata" }

func (MetadataCheck) Analyze(_ context.Context, md *vet.PackageMetadata) (vet.CheckResult, error) {
	var findings []vet.Finding
	var score float64

	switch {
	case strings.TrimSpace(md.Description) == "":
		findings = append(findings, vet.Finding{
			ID:          "metadata_missing_description",
			Title:       "Missing description",
			Description: "Package has no description",
			Severity:    vet.SeverityMedium,
			Remediation: "Verify the package is legitimate despite sparse metadata",
		})
		score += 1.5
	case len(strings.TrimSpace(md.Description)) < 10:
		findings = append(findings, vet.Finding{
			ID:          "metadata_short_description",
			Title:       "Very short description",
			Description: "Package description is too short to be meaningful",
			Severity:    vet.SeverityLow,
			Evidence:    []string{"description: " + md.Description},
		})
		score += 1.0
	}

	if md.Homepage != "" && !isValidURL(md.Homepage) {
		findings = append(findings, vet.Finding{
			ID:          "metadata_invalid_homepage",
			Title:       "Invalid homepage URL",
			Description: "Homepage is not a valid http(s) URL",
			Severity:    vet.SeverityMedium,
			Evidence:    []string{"homepage: " + md.Homepage},
		})
		score += 1.0
	}

	switch {
	case md.Repository == "":
		findings = append(findings, vet.Finding{
			ID:          "metadata_missing_repository",
			Title:       "No source repository",
			Description: "Package does not link to a source repository",
			Severity:    vet.SeverityMedium,
			Remediation: "Prefer packages with a public source repository",
		})
		score += 1.5
	case !isValidURL(md.Repository):
		findings = append(findings, vet.Finding{
			ID:          "metadata_invalid_repository",
			Title:       "Invalid repository URL",
			Description: "Repository is not a valid http(s) URL",
			Severity:    vet.SeverityMedium,
			Evidence:    []string{"repository: " + md.Repository},
		})
		score += 1.0
	}

	switch {
	case strings.TrimSpace(md.License) == "":
		findings = append(findings, vet.Finding{
			ID:          "metadata_missing_license",
			Title:       "No license",
			Description: "Package declares no license",
			Severity:    vet.SeverityLow,
		})
		score += 1.0
	case !isOSILicense(md.License):
		findings = append(findings, vet.Finding{
			ID:          "metadata_non_osi_license",
			Title:       "Non-OSI license",
			Description: "Package license is not a recognized OSI-approved license",
			Severity:    vet.SeverityLow,
			Evidence:    []string{"license: " + md.License},
		})
		score += 0.5
	}

	return vet.CheckResult{
		Check:      "metadata",
		RiskScore:  score,
		Confidence: 0.9,
		Findings:   findings,
	}, nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isOSILicense(license string) bool {
	l := strings.ToLower(license)
	for _, marker := range osiLicenseMarkers {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}
