/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads pkgvet's YAML configuration: the active check list,
// scoring weights, sandbox settings, and registry endpoint. Sensitive or
// deployment-specific values can be overridden through PKGVET_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SandboxConfig controls the Docker-backed behavior sandbox.
type SandboxConfig struct {
	Image                 string `yaml:"image"`
	ProbeTimeoutSeconds   int    `yaml:"probe_timeout_seconds"`
	InstallTimeoutSeconds int    `yaml:"install_timeout_seconds"`
	RunTimeoutSeconds     int    `yaml:"run_timeout_seconds"`
}

func (s SandboxConfig) ProbeTimeout() time.Duration {
	return time.Duration(s.ProbeTimeoutSeconds) * time.Second
}

func (s SandboxConfig) InstallTimeout() time.Duration {
	return time.Duration(s.InstallTimeoutSeconds) * time.Second
}

func (s SandboxConfig) RunTimeout() time.Duration {
	return time.Duration(s.RunTimeoutSeconds) * time.Second
}

// RegistryConfig points at the package metadata source.
type RegistryConfig struct {
	BaseURL string `yaml:"base_url"`
}

// Config is the full pkgvet configuration.
type Config struct {
	Checks         []string           `yaml:"checks"`
	EnableBehavior bool               `yaml:"enable_behavior"`
	Weights        map[string]float64 `yaml:"weights"`
	Sandbox        SandboxConfig      `yaml:"sandbox"`
	SensitivePaths []string           `yaml:"sensitive_paths"`
	Registry       RegistryConfig     `yaml:"registry"`
	SourceDir      string             `yaml:"source_dir"`
}

// Default returns the compiled-in configuration. The behavior check is off
// by default; it is appended to the check list when EnableBehavior is set.
func Default() *Config {
	return &Config{
		Checks:         []string{"typosquat", "maintainer", "metadata", "install_hooks"},
		EnableBehavior: false,
		Weights:        nil, // scorer falls back to its default table
		Sandbox: SandboxConfig{
			Image:                 "python:3.11-slim",
			ProbeTimeoutSeconds:   5,
			InstallTimeoutSeconds: 120,
			RunTimeoutSeconds:     120,
		},
		SensitivePaths: nil, // classifier falls back to its default set
		Registry: RegistryConfig{
			BaseURL: "https://pypi.org",
		},
	}
}

// Load reads YAML config from path over the defaults, then applies
// environment overrides. An empty path or a missing file yields the
// defaults (still env-overridable); a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("config load: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config unmarshal: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.EnableBehavior && !contains(cfg.Checks, "behavior") {
		cfg.Checks = append(cfg.Checks, "behavior")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PKGVET_SANDBOX_IMAGE"); v != "" {
		cfg.Sandbox.Image = v
	}
	if v := os.Getenv("PKGVET_REGISTRY_URL"); v != "" {
		cfg.Registry.BaseURL = v
	}
	if v := os.Getenv("PKGVET_SOURCE_DIR"); v != "" {
		cfg.SourceDir = v
	}
	if v := os.Getenv("PKGVET_ENABLE_BEHAVIOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableBehavior = b
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
