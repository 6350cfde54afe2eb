/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package sandbox provides the isolated execution environment used by the
// dynamic behavior check: a Docker-backed runtime that installs a package
// with no network and a read-only root, runs it under strace, and a
// classifier that turns the raw trace into suspicion findings.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrIsolationUnavailable means the backend's capability probe failed.
	ErrIsolationUnavailable = errors.New("isolation backend is not available")

	// ErrBackend covers provisioning and teardown failures.
	ErrBackend = errors.New("sandbox backend error")

	// ErrInstallFailed means the package could not be installed inside
	// the environment.
	ErrInstallFailed = errors.New("package install failed")

	// ErrExecutionFailed means the traced command could not be run.
	ErrExecutionFailed = errors.New("traced execution failed")
)

// Handle identifies one isolated environment instance. Owned exclusively by
// the single behavior-check invocation that created it.
type Handle string

// Runtime is the isolation backend contract. Callers acquire an environment
// with Create and must guarantee Destroy runs on every exit path.
type Runtime interface {
	ProbeAvailable(ctx context.Context) bool
	Create(ctx context.Context) (Handle, error)
	Install(ctx context.Context, h Handle, name, version string) error
	RunTraced(ctx context.Context, h Handle, command []string) (string, error)
	Destroy(ctx context.Context, h Handle) error
}

// runnerFunc executes one external command, returning captured stdout and
// stderr. Injected so the runtime is testable without a container engine.
type runnerFunc func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

func defaultRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

const (
	defaultImage          = "python:3.11-slim"
	defaultProbeTimeout   = 5 * time.Second
	defaultInstallTimeout = 2 * time.Minute
	defaultRunTimeout     = 2 * time.Minute
	createTimeout         = 30 * time.Second
	destroyTimeout        = 30 * time.Second

	// containerTTL bounds the sleep used as PID 1, so an orphaned
	// container exits on its own even if Destroy never ran.
	containerTTL = "600"
)

// DockerConfig configures a DockerRuntime. Zero values fall back to
// defaults.
type DockerConfig struct {
	Image          string
	ProbeTimeout   time.Duration
	InstallTimeout time.Duration
	RunTimeout     time.Duration
	Logger         logrus.FieldLogger
}

// DockerRuntime shells out to the docker CLI. Environments are created with
// networking disabled and a read-only root filesystem (plus a tmpfs on /tmp
// so pip has somewhere to write).
type DockerRuntime struct {
	image          string
	probeTimeout   time.Duration
	installTimeout time.Duration
	runTimeout     time.Duration

	run runnerFunc
	log logrus.FieldLogger
}

// NewDockerRuntime builds a runtime over the local docker CLI.
func NewDockerRuntime(cfg DockerConfig) *DockerRuntime {
	rt := &DockerRuntime{
		image:          cfg.Image,
		probeTimeout:   cfg.ProbeTimeout,
		installTimeout: cfg.InstallTimeout,
		runTimeout:     cfg.RunTimeout,
		run:            defaultRunner,
		log:            cfg.Logger,
	}
	if rt.image == "" {
		rt.image = defaultImage
	}
	if rt.probeTimeout <= 0 {
		rt.probeTimeout = defaultProbeTimeout
	}
	if rt.installTimeout <= 0 {
		rt.installTimeout = defaultInstallTimeout
	}
	if rt.runTimeout <= 0 {
		rt.runTimeout = defaultRunTimeout
	}
	if rt.log == nil {
		rt.log = logrus.StandardLogger()
	}
	return rt
}

// ProbeAvailable reports whether the docker CLI answers within the probe
// timeout. Cheap enough to call once per interrogation.
func (rt *DockerRuntime) ProbeAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, rt.probeTimeout)
	defer cancel()

	_, _, err := rt.run(ctx, "docker", "--version")
	if err != nil {
		rt.log.Debugf("docker probe failed: %v", err)
		return false
	}
	return true
}

// Create provisions one isolated container. The container runs a bounded
// sleep as PID 1 so that subsequent exec calls have a live target; plain
// `docker create` would leave it stopped and unusable for exec.
func (rt *DockerRuntime) Create(ctx context.Context) (Handle, error) {
	if !rt.ProbeAvailable(ctx) {
		return "", ErrIsolationUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	stdout, stderr, err := rt.run(ctx, "docker",
		"run", "--detach",
		"--network", "none",
		"--read-only",
		"--tmpfs", "/tmp",
		"--entrypoint", "sleep",
		rt.image, containerTTL,
	)
	if err != nil {
		return "", fmt.Errorf("%w: creating container from %s: %v: %s", ErrBackend, rt.image, err, strings.TrimSpace(stderr))
	}

	id := strings.TrimSpace(stdout)
	if id == "" {
		return "", fmt.Errorf("%w: docker returned no container id", ErrBackend)
	}

	rt.log.WithField("container", id).Debug("sandbox container created")
	return Handle(id), nil
}

// Install installs the package under test inside the environment using pip.
func (rt *DockerRuntime) Install(ctx context.Context, h Handle, name, version string) error {
	if h == "" {
		return fmt.Errorf("%w: container not created", ErrBackend)
	}

	spec := name
	if version != "" {
		spec = fmt.Sprintf("%s==%s", name, version)
	}

	ctx, cancel := context.WithTimeout(ctx, rt.installTimeout)
	defer cancel()

	_, stderr, err := rt.run(ctx, "docker",
		"exec", string(h),
		"pip", "install", "--no-cache-dir", "--target", "/tmp/site-packages", spec,
	)
	if err != nil {
		return fmt.Errorf("%w: installing %s: %v: %s", ErrInstallFailed, spec, err, strings.TrimSpace(stderr))
	}

	rt.log.WithField("container", string(h)).Debugf("installed %s", spec)
	return nil
}

// RunTraced executes command inside the environment under strace, returning
// the combined stdout, stderr, and trace text.
func (rt *DockerRuntime) RunTraced(ctx context.Context, h Handle, command []string) (string, error) {
	if h == "" {
		return "", fmt.Errorf("%w: container not created", ErrBackend)
	}

	ctx, cancel := context.WithTimeout(ctx, rt.runTimeout)
	defer cancel()

	args := append([]string{"exec",
		"--env", "PYTHONPATH=/tmp/site-packages",
		string(h), "strace", "-f"}, command...)

	stdout, stderr, err := rt.run(ctx, "docker", args...)
	if err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrExecutionFailed, err, strings.TrimSpace(stderr))
	}

	return stdout + stderr, nil
}

// Destroy force-removes the container. Idempotent: an empty handle and an
// already-removed container are both no-ops.
func (rt *DockerRuntime) Destroy(ctx context.Context, h Handle) error {
	if h == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, destroyTimeout)
	defer cancel()

	_, stderr, err := rt.run(ctx, "docker", "rm", "-f", string(h))
	if err != nil {
		if strings.Contains(stderr, "No such container") {
			return nil
		}
		return fmt.Errorf("%w: removing container %s: %v: %s", ErrBackend, h, err, strings.TrimSpace(stderr))
	}

	rt.log.WithField("container", string(h)).Debug("sandbox container removed")
	return nil
}
