/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// disposableEmailDomains are throwaway mail providers; a maintainer
// reachable only through one is a reputation red flag.
var disposableEmailDomains = []string{
	"tempmail.com",
	"temp-mail.org",
	"guerrillamail.com",
	"10minutemail.com",
	"mailinator.com",
	"throwaway.email",
	"yopmail.com",
}

// MaintainerCheck applies reputation heuristics to the maintainer list.
type MaintainerCheck struct {
	// now is injectable for account-age tests.
	now func() time.Time
}

func NewMaintainerCheck() *MaintainerCheck {
	return &MaintainerCheck{now: time.Now}
}

func (*MaintainerCheck) Name() string { return "maintainer" }

func (c *MaintainerCheck) Analyze(_ context.Context, md *vet.PackageMetadata) (vet.CheckResult, error) {
	var findings []vet.Finding
	var score float64

	if len(md.Maintainers) == 0 {
		findings = append(findings, vet.Finding{
			ID:          "maintainer_missing",
			Title:       "No maintainer information",
			Description: "The registry reports no maintainers for this package",
			Severity:    vet.SeverityMedium,
			Remediation: "Verify package legitimacy through its source repository",
		})
		score += 2.0
	}

	for _, m := range md.Maintainers {
		who := m.Username
		if who == "" {
			who = m.Email
		}

		if domain := emailDomain(m.Email); domain != "" && isDisposableDomain(domain) {
			findings = append(findings, vet.Finding{
				ID:          "maintainer_suspicious_email",
				Title:       "Maintainer uses a disposable email domain",
				Description: fmt.Sprintf("Maintainer %s is registered with %s", who, domain),
				Severity:    vet.SeverityHigh,
				Evidence:    []string{"email: " + m.Email},
				Remediation: "Verify the maintainer's identity before trusting this package",
			})
			score += 2.5
		}

		if m.AccountCreated != nil {
			if age := c.now().Sub(*m.AccountCreated); age < 365*24*time.Hour {
				findings = append(findings, vet.Finding{
					ID:          "maintainer_young_account",
					Title:       "Young maintainer account",
					Description: fmt.Sprintf("Maintainer %s's account is younger than one year", who),
					Severity:    vet.SeverityMedium,
					Evidence:    []string{fmt.Sprintf("account created: %s", m.AccountCreated.Format(time.RFC3339))},
				})
				score += 1.5
			}
		}

		if m.PackageCount != nil {
			switch {
			case *m.PackageCount == 0:
				findings = append(findings, vet.Finding{
					ID:          "maintainer_no_packages",
					Title:       "Maintainer has no other packages",
					Description: fmt.Sprintf("Maintainer %s maintains no other packages", who),
					Severity:    vet.SeverityLow,
				})
				score += 1.0
			case *m.PackageCount >= 50:
				findings = append(findings, vet.Finding{
					ID:          "maintainer_many_packages",
					Title:       "Maintainer publishes many packages",
					Description: fmt.Sprintf("Maintainer %s publishes %d packages, a pattern seen in squatting campaigns", who, *m.PackageCount),
					Severity:    vet.SeverityLow,
				})
				score += 0.5
			}
		}
	}

	return vet.CheckResult{
		Check:      "maintainer",
		RiskScore:  score,
		Confidence: 0.7,
		Findings:   findings,
	}, nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func isDisposableDomain(domain string) bool {
	for _, d := range disposableEmailDomains {
		if domain == d {
			return true
		}
	}
	return false
}
