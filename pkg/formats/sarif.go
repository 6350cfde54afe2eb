/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package formats

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// SarifFormat renders a verdict as a SARIF 2.1.0 log so findings can flow
// into code scanning dashboards.
type SarifFormat struct{}

// Render implements Format.
func (SarifFormat) Render(w io.Writer, v *vet.Verdict) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("pkgvet", "https://github.com/pkgvet/pkgvet")

	seen := map[string]bool{}
	for _, row := range Rows(v) {
		if !seen[row.FindingID] {
			run.AddRule(row.FindingID).
				WithDescription(row.Title)
			seen[row.FindingID] = true
		}

		message := fmt.Sprintf("%s: %s", v.Package, row.Description)
		run.CreateResultForRule(row.FindingID).
			WithLevel(sarifLevel(row.Severity)).
			WithMessage(sarif.NewTextMessage(message))
	}

	report.AddRun(run)

	return report.PrettyWrite(w)
}

func sarifLevel(s vet.Severity) string {
	switch s {
	case vet.SeverityCritical, vet.SeverityHigh:
		return "error"
	case vet.SeverityMedium:
		return "warning"
	case vet.SeverityLow:
		return "note"
	default:
		return "none"
	}
}
