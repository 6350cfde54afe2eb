/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package formats

import "github.com/pkgvet/pkgvet/pkg/vet"

// FilterRows keeps the rows whose severity ranks at or above min.
func FilterRows(rows []Row, min vet.Severity) []Row {
	var out []Row
	for _, r := range rows {
		if r.Severity.Rank() >= min.Rank() {
			out = append(out, r)
		}
	}
	return out
}

// MaxFindingSeverity returns the highest finding severity present in the
// verdict, or unknown when there are no findings. Used by the --fail-on
// exit gate.
func MaxFindingSeverity(v *vet.Verdict) vet.Severity {
	max := vet.SeverityUnknown
	for _, result := range v.Results {
		for _, f := range result.Findings {
			if f.Severity.Rank() > max.Rank() {
				max = f.Severity
			}
		}
	}
	return max
}
