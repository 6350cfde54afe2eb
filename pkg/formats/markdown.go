/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// MarkdownFormat renders a verdict as a Markdown report suitable for pull
// request comments and issue bodies.
type MarkdownFormat struct{}

// Render implements Format.
func (MarkdownFormat) Render(w io.Writer, v *vet.Verdict) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Package Vetting Report: %s\n\n", v.Package))
	b.WriteString(fmt.Sprintf("**Overall risk:** %s (%.1f/10)\n\n", v.OverallRisk, v.RiskScore))
	b.WriteString(fmt.Sprintf("**Confidence:** %.0f%%\n\n", v.Confidence*100))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", v.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	rows := Rows(v)
	if len(rows) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString("## Findings\n\n")
		b.WriteString("| Check | Severity | Finding | Description |\n")
		b.WriteString("|-------|----------|---------|-------------|\n")
		for _, r := range rows {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				r.Check,
				strings.ToUpper(string(r.Severity)),
				r.FindingID,
				escapePipes(r.Description),
			))
		}
		b.WriteString("\n")
	}

	if len(v.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range v.Recommendations {
			b.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
