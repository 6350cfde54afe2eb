/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package sandbox

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

type stubRunner struct {
	calls  []recordedCall
	stdout string
	stderr string
	err    error
}

func (s *stubRunner) run(_ context.Context, name string, args ...string) (string, string, error) {
	s.calls = append(s.calls, recordedCall{name: name, args: args})
	return s.stdout, s.stderr, s.err
}

func newStubbedRuntime(runner *stubRunner) *DockerRuntime {
	rt := NewDockerRuntime(DockerConfig{})
	rt.run = runner.run
	return rt
}

func TestProbeAvailable(t *testing.T) {
	runner := &stubRunner{stdout: "Docker version 24.0.5"}
	rt := newStubbedRuntime(runner)

	assert.True(t, rt.ProbeAvailable(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "docker", runner.calls[0].name)
	assert.Equal(t, []string{"--version"}, runner.calls[0].args)
}

func TestProbeUnavailable(t *testing.T) {
	runner := &stubRunner{err: errors.New("command not found")}
	rt := newStubbedRuntime(runner)

	assert.False(t, rt.ProbeAvailable(context.Background()))
}

func TestCreateIsolatesContainer(t *testing.T) {
	runner := &stubRunner{stdout: "abc123\n"}
	rt := newStubbedRuntime(runner)

	h, err := rt.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Handle("abc123"), h)

	// probe then run
	require.Len(t, runner.calls, 2)
	args := strings.Join(runner.calls[1].args, " ")
	assert.Contains(t, args, "--network none")
	assert.Contains(t, args, "--read-only")
	assert.Contains(t, args, "--tmpfs /tmp")
	assert.Contains(t, args, "python:3.11-slim")
}

func TestCreateBackendError(t *testing.T) {
	runner := &stubRunner{}
	rt := newStubbedRuntime(runner)

	// probe succeeds, run fails
	calls := 0
	rt.run = func(ctx context.Context, name string, args ...string) (string, string, error) {
		calls++
		if calls == 1 {
			return "Docker version", "", nil
		}
		return "", "no space left on device", errors.New("exit status 1")
	}

	_, err := rt.Create(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
}

func TestInstallBuildsVersionedSpec(t *testing.T) {
	runner := &stubRunner{}
	rt := newStubbedRuntime(runner)

	err := rt.Install(context.Background(), "abc123", "requests", "2.31.0")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	args := strings.Join(runner.calls[0].args, " ")
	assert.Contains(t, args, "exec abc123 pip install")
	assert.Contains(t, args, "requests==2.31.0")
}

func TestInstallFailureIsTyped(t *testing.T) {
	runner := &stubRunner{stderr: "ERROR: No matching distribution", err: errors.New("exit status 1")}
	rt := newStubbedRuntime(runner)

	err := rt.Install(context.Background(), "abc123", "definitely-not-real", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInstallFailed)
}

func TestRunTracedWrapsCommandInStrace(t *testing.T) {
	runner := &stubRunner{stdout: "openat(...)", stderr: "connect(...)"}
	rt := newStubbedRuntime(runner)

	out, err := rt.RunTraced(context.Background(), "abc123", []string{"python", "-c", "import requests"})
	require.NoError(t, err)

	// trace output lands on both streams; both are kept
	assert.Contains(t, out, "openat")
	assert.Contains(t, out, "connect")

	args := strings.Join(runner.calls[0].args, " ")
	assert.Contains(t, args, "strace -f python -c import requests")
}

func TestRunTracedFailureIsTyped(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1")}
	rt := newStubbedRuntime(runner)

	_, err := rt.RunTraced(context.Background(), "abc123", []string{"python"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionFailed)
}

func TestDestroyEmptyHandleIsNoOp(t *testing.T) {
	runner := &stubRunner{}
	rt := newStubbedRuntime(runner)

	require.NoError(t, rt.Destroy(context.Background(), ""))
	assert.Empty(t, runner.calls)
}

func TestDestroyIdempotent(t *testing.T) {
	runner := &stubRunner{stderr: "Error: No such container: abc123", err: errors.New("exit status 1")}
	rt := newStubbedRuntime(runner)

	assert.NoError(t, rt.Destroy(context.Background(), "abc123"))
}

func TestDestroyForcesRemoval(t *testing.T) {
	runner := &stubRunner{}
	rt := newStubbedRuntime(runner)

	require.NoError(t, rt.Destroy(context.Background(), "abc123"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"rm", "-f", "abc123"}, runner.calls[0].args)
}
