/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pkgvet/pkgvet/internal/sandbox"
	"github.com/pkgvet/pkgvet/pkg/vet"
)

// Risk contribution per suspicious behavior category. Cumulative, clamped
// to 10 by the result. Tuned so that network-only < network+spawn <
// network+spawn+sensitive-file.
const (
	networkActivityPoints  = 2.5
	processSpawningPoints  = 2.0
	sensitiveAccessPoints  = 1.5
	installFailurePoints   = 1.0
	executionFailurePoints = 0.5
)

const maxEvidenceLines = 5

// BehaviorCheck installs the package in an isolated environment, traces its
// import, and classifies the system calls it makes. Every failure mode
// degrades to a result; errors never reach the interrogator.
type BehaviorCheck struct {
	available  bool
	runtime    sandbox.Runtime
	classifier sandbox.Classifier
	log        logrus.FieldLogger
}

// NewBehaviorCheck wires the check to an isolation backend. available is
// the result of the backend capability probe, taken once at check-set
// resolution time.
func NewBehaviorCheck(rt sandbox.Runtime, available bool, classifier sandbox.Classifier, log logrus.FieldLogger) *BehaviorCheck {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BehaviorCheck{
		available:  available,
		runtime:    rt,
		classifier: classifier,
		log:        log,
	}
}

func (*BehaviorCheck) Name() string { return "behavior" }

func (b *BehaviorCheck) Analyze(ctx context.Context, md *vet.PackageMetadata) (vet.CheckResult, error) {
	if !b.available || b.runtime == nil {
		return vet.CheckResult{
			Check:      "behavior",
			Confidence: 0,
			Findings: []vet.Finding{{
				ID:          "behavior_isolation_unavailable",
				Title:       "Isolation backend unavailable",
				Description: "No isolation backend is available; dynamic behavior analysis was skipped",
				Severity:    vet.SeverityUnknown,
			}},
			Diagnostics: map[string]any{"skipped": true},
		}, nil
	}

	handle, err := b.runtime.Create(ctx)
	if err != nil {
		return vet.CheckResult{
			Check:      "behavior",
			Confidence: 0.1,
			Findings: []vet.Finding{{
				ID:          "behavior_sandbox_error",
				Title:       "Sandbox could not be provisioned",
				Description: err.Error(),
				Severity:    vet.SeverityUnknown,
			}},
			Diagnostics: map[string]any{"error": err.Error()},
		}, nil
	}
	defer func() {
		if derr := b.runtime.Destroy(context.Background(), handle); derr != nil {
			b.log.Warnf("sandbox teardown failed: %v", derr)
		}
	}()

	name := md.Identity.Name
	if err := b.runtime.Install(ctx, handle, name, md.Identity.Version); err != nil {
		// a package that cannot even install cleanly is mildly
		// suspicious in its own right
		return vet.CheckResult{
			Check:      "behavior",
			RiskScore:  installFailurePoints,
			Confidence: 0.2,
			Findings: []vet.Finding{{
				ID:          "behavior_install_failed",
				Title:       "Package failed to install in sandbox",
				Description: err.Error(),
				Severity:    vet.SeverityMedium,
				Remediation: "Inspect the package's install scripts before retrying",
			}},
			Diagnostics: map[string]any{"install_error": err.Error()},
		}, nil
	}

	command := []string{"python", "-c", fmt.Sprintf("import %s", importName(name))}
	raw, err := b.runtime.RunTraced(ctx, handle, command)
	if err != nil {
		return vet.CheckResult{
			Check:      "behavior",
			RiskScore:  executionFailurePoints,
			Confidence: 0.2,
			Findings: []vet.Finding{{
				ID:          "behavior_execution_failed",
				Title:       "Traced execution failed",
				Description: err.Error(),
				Severity:    vet.SeverityUnknown,
			}},
			Diagnostics: map[string]any{"execution_error": err.Error()},
		}, nil
	}

	record := sandbox.ParseTrace(raw)

	var findings []vet.Finding
	var score float64

	if n := len(record.NetworkCalls); n > 0 {
		findings = append(findings, vet.Finding{
			ID:          "behavior_network_activity",
			Title:       "Network activity detected",
			Description: fmt.Sprintf("Package made %d network-related system calls despite network isolation", n),
			Severity:    vet.SeverityMedium,
			Evidence:    sampleLines(record.NetworkCalls),
			Remediation: "Verify why this package needs network access at import time",
		})
		score += networkActivityPoints
	}

	for _, prefix := range b.classifier.SensitivePrefixes(record) {
		findings = append(findings, vet.Finding{
			ID:          "behavior_sensitive_file_access_" + strings.Trim(strings.ReplaceAll(prefix, "/", "_"), "_"),
			Title:       fmt.Sprintf("Suspicious file access under %s", prefix),
			Description: fmt.Sprintf("Package touched files under the sensitive path %s", prefix),
			Severity:    vet.SeverityHigh,
			Evidence:    sampleLines(record.FileOperations),
			Remediation: "Verify why this package reads or writes sensitive paths",
		})
		score += sensitiveAccessPoints
	}

	if n := len(record.ProcessSpawns); n > 0 {
		findings = append(findings, vet.Finding{
			ID:          "behavior_process_spawning",
			Title:       "Process spawning detected",
			Description: fmt.Sprintf("Package spawned %d processes at import time", n),
			Severity:    vet.SeverityMedium,
			Evidence:    sampleLines(record.ProcessSpawns),
			Remediation: "Verify why this package launches subprocesses at import time",
		})
		score += processSpawningPoints
	}

	if score > 10 {
		score = 10
	}

	return vet.CheckResult{
		Check:      "behavior",
		RiskScore:  score,
		Confidence: 0.7,
		Findings:   findings,
		Diagnostics: map[string]any{
			"network_calls":   len(record.NetworkCalls),
			"file_operations": len(record.FileOperations),
			"process_spawns":  len(record.ProcessSpawns),
			"suspicions":      b.classifier.Classify(record),
		},
	}, nil
}

// importName maps a distribution name to a plausible import name.
func importName(pkg string) string {
	return strings.ReplaceAll(strings.ToLower(pkg), "-", "_")
}

func sampleLines(lines []string) []string {
	if len(lines) <= maxEvidenceLines {
		return lines
	}
	sampled := make([]string, maxEvidenceLines, maxEvidenceLines+1)
	copy(sampled, lines[:maxEvidenceLines])
	return append(sampled, fmt.Sprintf("... and %d more", len(lines)-maxEvidenceLines))
}
