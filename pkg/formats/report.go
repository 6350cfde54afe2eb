/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package formats renders verdicts into the supported output formats and
// provides the flattened row model shared by the table, markdown, and
// triage views.
package formats

import (
	"io"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// Format renders one verdict to a writer.
type Format interface {
	Render(w io.Writer, v *vet.Verdict) error
}

// Row is one finding flattened with its originating check, the unit the
// table/markdown/triage views operate on.
type Row struct {
	Check       string
	FindingID   string
	Title       string
	Severity    vet.Severity
	Description string
	Evidence    []string
	Remediation string
}

// Rows flattens a verdict's findings in result order.
func Rows(v *vet.Verdict) []Row {
	var rows []Row
	for _, result := range v.Results {
		for _, f := range result.Findings {
			rows = append(rows, Row{
				Check:       result.Check,
				FindingID:   f.ID,
				Title:       f.Title,
				Severity:    f.Severity,
				Description: f.Description,
				Evidence:    f.Evidence,
				Remediation: f.Remediation,
			})
		}
	}
	return rows
}
