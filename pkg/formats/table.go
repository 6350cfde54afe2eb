/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// TableFormat renders a verdict as a human-readable terminal report: a
// summary block, a findings table, and the recommendation list.
type TableFormat struct{}

// Render implements Format.
func (TableFormat) Render(w io.Writer, v *vet.Verdict) error {
	fmt.Fprintf(w, "Package:    %s\n", v.Package)
	fmt.Fprintf(w, "Risk:       %s (%.1f/10)\n", v.OverallRisk, v.RiskScore)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", v.Confidence*100)
	fmt.Fprintln(w)

	rows := Rows(v)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No findings.")
	} else {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Check", "Severity", "Finding", "Description"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		for _, r := range rows {
			table.Append([]string{
				r.Check,
				strings.ToUpper(string(r.Severity)),
				r.FindingID,
				r.Description,
			})
		}
		table.Render()
	}

	if len(v.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range v.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}

	return nil
}
