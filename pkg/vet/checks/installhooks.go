/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// installScriptNames are the files that run (or configure) code at install
// time in Python packages.
var installScriptNames = []string{"setup.py", "setup.cfg", "pyproject.toml"}

type hookPattern struct {
	re          *regexp.Regexp
	id          string
	description string
	severity    vet.Severity
}

var dangerousPatterns = []hookPattern{
	{regexp.MustCompile(`exec\s*\(`), "install_hook_exec", "exec() call", vet.SeverityHigh},
	{regexp.MustCompile(`eval\s*\(`), "install_hook_eval", "eval() call", vet.SeverityHigh},
	{regexp.MustCompile(`__import__\s*\(`), "install_hook_dunder_import", "__import__() call", vet.SeverityHigh},
	{regexp.MustCompile(`subprocess\.`), "install_hook_subprocess", "subprocess usage", vet.SeverityHigh},
	{regexp.MustCompile(`os\.system`), "install_hook_os_system", "os.system() call", vet.SeverityHigh},
	{regexp.MustCompile(`os\.popen`), "install_hook_os_popen", "os.popen() call", vet.SeverityHigh},
	{regexp.MustCompile(`socket\.`), "install_hook_socket", "socket usage", vet.SeverityHigh},
	{regexp.MustCompile(`urllib\.request`), "install_hook_urllib", "urllib.request usage", vet.SeverityHigh},
	{regexp.MustCompile(`requests\.`), "install_hook_requests", "requests usage", vet.SeverityHigh},
	{regexp.MustCompile(`base64\.`), "install_hook_base64", "base64 encoding/decoding", vet.SeverityMedium},
	{regexp.MustCompile(`pickle\.`), "install_hook_pickle", "pickle usage", vet.SeverityMedium},
	{regexp.MustCompile(`marshal\.`), "install_hook_marshal", "marshal usage", vet.SeverityMedium},
}

var importLineRe = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([a-zA-Z0-9_.]+)`)

var dangerousImports = []string{
	"socket", "urllib", "http.client", "requests", "subprocess", "shutil", "tempfile",
}

// InstallHooksCheck statically scans a package's install scripts for
// patterns that execute code, reach the network, or obfuscate payloads at
// install time. It needs a local copy of the package source; without one it
// degrades to a zero-confidence result.
type InstallHooksCheck struct {
	// SourceDir is the root of an unpacked copy of the package source.
	SourceDir string
}

func (InstallHooksCheck) Name() string { return "install_hooks" }

func (c InstallHooksCheck) Analyze(_ context.Context, md *vet.PackageMetadata) (vet.CheckResult, error) {
	if c.SourceDir == "" {
		return vet.CheckResult{
			Check:      "install_hooks",
			Confidence: 0,
			Findings: []vet.Finding{{
				ID:          "install_hooks_no_source",
				Title:       "No package source available",
				Description: fmt.Sprintf("No local source directory to scan for %s; install-script analysis skipped", md.Identity.Name),
				Severity:    vet.SeverityUnknown,
			}},
			Diagnostics: map[string]any{"skipped": true},
		}, nil
	}

	var findings []vet.Finding
	var score float64
	scanned := 0

	for _, name := range installScriptNames {
		path := filepath.Join(c.SourceDir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			// absent install scripts are expected, not an error
			continue
		}
		scanned++

		fileFindings := scanInstallScript(name, string(content))
		for _, f := range fileFindings {
			findings = append(findings, f)
			if f.Severity == vet.SeverityHigh {
				score += 2.0
			} else {
				score += 1.0
			}
		}
	}

	if score > 10 {
		score = 10
	}

	return vet.CheckResult{
		Check:      "install_hooks",
		RiskScore:  score,
		Confidence: 0.8,
		Findings:   findings,
		Diagnostics: map[string]any{
			"files_scanned": scanned,
		},
	}, nil
}

func scanInstallScript(filename, content string) []vet.Finding {
	var findings []vet.Finding
	seen := map[string]struct{}{}

	for _, p := range dangerousPatterns {
		loc := p.re.FindStringIndex(content)
		if loc == nil {
			continue
		}
		if _, dup := seen[p.id]; dup {
			continue
		}
		seen[p.id] = struct{}{}

		line := strings.Count(content[:loc[0]], "\n") + 1
		findings = append(findings, vet.Finding{
			ID:          p.id,
			Title:       "Suspicious install-time code: " + p.description,
			Description: fmt.Sprintf("Found %s in %s at line %d", p.description, filename, line),
			Severity:    p.severity,
			Evidence: []string{
				"file: " + filename,
				fmt.Sprintf("line: %d", line),
			},
			Remediation: "Review install hooks for malicious code",
		})
	}

	for _, m := range importLineRe.FindAllStringSubmatch(content, -1) {
		module := m[1]
		for _, dangerous := range dangerousImports {
			if module != dangerous && !strings.HasPrefix(module, dangerous+".") {
				continue
			}
			id := "install_hook_import_" + strings.ReplaceAll(dangerous, ".", "_")
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			findings = append(findings, vet.Finding{
				ID:          id,
				Title:       "Suspicious install-time import: " + module,
				Description: fmt.Sprintf("%s imports the potentially dangerous module %s", filename, module),
				Severity:    vet.SeverityMedium,
				Evidence:    []string{"file: " + filename, "import: " + module},
				Remediation: "Verify that network or system access is necessary at install time",
			})
		}
	}

	return findings
}
