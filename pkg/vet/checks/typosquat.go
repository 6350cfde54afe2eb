/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// popularPackages are widely installed names that squatters imitate.
var popularPackages = []string{
	"requests", "numpy", "pandas", "django", "flask", "scipy",
	"matplotlib", "pillow", "setuptools", "pip", "urllib3", "boto3",
	"botocore", "certifi", "idna", "charset-normalizer", "python-dateutil",
	"six", "pyyaml", "cryptography", "rich", "click", "pytest",
	"packaging", "typing-extensions", "wheel", "attrs", "jinja2", "lxml",
}

// substitutions are the character swaps squatters lean on.
var substitutions = [][2]string{
	{"0", "o"},
	{"1", "l"},
	{"5", "s"},
	{"rn", "m"},
	{"vv", "w"},
}

// TyposquatCheck flags package names that are suspiciously close to a
// well-known package name.
type TyposquatCheck struct{}

func (TyposquatCheck) Name() string { return "typosquat" }

func (TyposquatCheck) Analyze(_ context.Context, md *vet.PackageMetadata) (vet.CheckResult, error) {
	name := strings.ToLower(md.Identity.Name)

	result := vet.CheckResult{
		Check:      "typosquat",
		Confidence: 0.8,
	}

	for _, popular := range popularPackages {
		if name == popular {
			// the package is the well-known one, not an imitation
			return result, nil
		}
	}

	seen := map[string]struct{}{}
	addFinding := func(f vet.Finding, points float64) {
		if _, dup := seen[f.ID]; dup {
			return
		}
		seen[f.ID] = struct{}{}
		result.Findings = append(result.Findings, f)
		result.RiskScore += points
	}

	for _, popular := range popularPackages {
		if d := levenshtein.ComputeDistance(name, popular); d > 0 && d <= 2 {
			addFinding(vet.Finding{
				ID:          "typosquat_similar_name",
				Title:       fmt.Sprintf("Name is very similar to %q", popular),
				Description: fmt.Sprintf("Package name %q is within edit distance %d of the popular package %q", name, d, popular),
				Severity:    vet.SeverityHigh,
				Evidence:    []string{fmt.Sprintf("levenshtein(%q, %q) = %d", name, popular, d)},
				Remediation: fmt.Sprintf("Confirm you did not mean to install %q", popular),
			}, 3.0)
		}

		if hasPrefixOrSuffix(name, popular) {
			addFinding(vet.Finding{
				ID:          "typosquat_prefix_suffix",
				Title:       fmt.Sprintf("Name embeds the popular package %q", popular),
				Description: fmt.Sprintf("Package name %q adds a prefix or suffix to %q, a common squatting pattern", name, popular),
				Severity:    vet.SeverityMedium,
				Remediation: fmt.Sprintf("Confirm this package is affiliated with %q", popular),
			}, 2.0)
		}

		if matchesBySubstitution(name, popular) {
			addFinding(vet.Finding{
				ID:          "typosquat_character_substitution",
				Title:       fmt.Sprintf("Name imitates %q via character substitution", popular),
				Description: fmt.Sprintf("Replacing look-alike characters in %q yields the popular package %q", name, popular),
				Severity:    vet.SeverityHigh,
				Remediation: fmt.Sprintf("Confirm you did not mean to install %q", popular),
			}, 3.0)
		}
	}

	result.RiskScore = minFloat(result.RiskScore, 10)
	return result, nil
}

func hasPrefixOrSuffix(name, popular string) bool {
	for _, sep := range []string{"-", "_", "."} {
		if strings.HasPrefix(name, popular+sep) || strings.HasSuffix(name, sep+popular) {
			return true
		}
	}
	return false
}

func matchesBySubstitution(name, popular string) bool {
	for _, sub := range substitutions {
		from, to := sub[0], sub[1]
		if !strings.Contains(name, from) {
			continue
		}
		if strings.ReplaceAll(name, from, to) == popular {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
