/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import (
	"fmt"
	"strings"
)

// Severity is the risk level attached to a finding or to a whole verdict.
type Severity string

const (
	SeverityUnknown  Severity = "unknown"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns an integer rank for comparison (Low=1, Critical=4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a severity string case-insensitively.
// Accepts "moderate" as "medium".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "unknown":
		return SeverityUnknown, nil
	case "low":
		return SeverityLow, nil
	case "medium", "moderate":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityUnknown, fmt.Errorf("invalid severity: %s", s)
	}
}

// SeverityForScore maps an aggregate risk score to a severity level.
// Bounds: <2 unknown, [2,4) low, [4,6) medium, [6,8) high, [8,10] critical.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= 8.0:
		return SeverityCritical
	case score >= 6.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score >= 2.0:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}
