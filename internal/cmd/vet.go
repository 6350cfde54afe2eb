/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgvet/pkgvet/internal/config"
	"github.com/pkgvet/pkgvet/internal/registry"
	"github.com/pkgvet/pkgvet/internal/sandbox"
	"github.com/pkgvet/pkgvet/internal/triage"
	"github.com/pkgvet/pkgvet/pkg/formats"
	"github.com/pkgvet/pkgvet/pkg/formats/verdictjson"
	"github.com/pkgvet/pkgvet/pkg/vet"
	"github.com/pkgvet/pkgvet/pkg/vet/checks"
)

type vetOptions struct {
	ecosystem      string
	version        string
	output         string
	configPath     string
	enableBehavior bool
	openTriage     bool
	failOn         string
	sourceDir      string
}

func addVet(parentCmd *cobra.Command) {
	opts := &vetOptions{}

	cmd := &cobra.Command{
		Use:   "vet <package>",
		Short: "Interrogate a package and print the risk verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVet(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ecosystem, "ecosystem", "pypi", "package ecosystem")
	cmd.Flags().StringVar(&opts.version, "version", "", "package version (defaults to the latest release)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json, markdown, sarif")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a pkgvet config file")
	cmd.Flags().BoolVar(&opts.enableBehavior, "enable-behavior", false, "run the sandboxed behavior check")
	cmd.Flags().BoolVar(&opts.openTriage, "triage", false, "open the verdict in the interactive triage browser")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "", "exit non-zero when any finding is at or above this severity")
	cmd.Flags().StringVar(&opts.sourceDir, "source-dir", "", "local package source directory for the install-hooks check")

	parentCmd.AddCommand(cmd)
}

func runVet(cmd *cobra.Command, pkgName string, opts *vetOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if opts.enableBehavior {
		cfg.EnableBehavior = true
		if !containsCheck(cfg.Checks, "behavior") {
			cfg.Checks = append(cfg.Checks, "behavior")
		}
	}
	if opts.sourceDir != "" {
		cfg.SourceDir = opts.sourceDir
	}

	if opts.ecosystem != "pypi" {
		return fmt.Errorf("unsupported ecosystem %q (only pypi is supported)", opts.ecosystem)
	}

	var failOn vet.Severity
	if opts.failOn != "" {
		failOn, err = vet.ParseSeverity(opts.failOn)
		if err != nil {
			return err
		}
	}

	log := logrus.StandardLogger()

	runtime := sandbox.NewDockerRuntime(sandbox.DockerConfig{
		Image:          cfg.Sandbox.Image,
		ProbeTimeout:   cfg.Sandbox.ProbeTimeout(),
		InstallTimeout: cfg.Sandbox.InstallTimeout(),
		RunTimeout:     cfg.Sandbox.RunTimeout(),
		Logger:         log,
	})

	active := checks.Resolve(ctx, cfg.Checks, checks.ResolveOptions{
		Runtime:        runtime,
		SensitivePaths: cfg.SensitivePaths,
		SourceDir:      cfg.SourceDir,
		Logger:         log,
	})

	interrogator := vet.NewInterrogator(active,
		vet.WithMetadataSource(registry.NewPyPIClient(cfg.Registry.BaseURL)),
		vet.WithScorer(vet.NewRiskScorer(cfg.Weights)),
		vet.WithLogger(log),
	)

	verdict, err := interrogator.Interrogate(ctx, vet.PackageIdentity{
		Ecosystem: opts.ecosystem,
		Name:      pkgName,
		Version:   opts.version,
	}, nil)
	if err != nil {
		return err
	}

	if opts.openTriage {
		p := tea.NewProgram(triage.New(formats.Rows(verdict)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
	} else {
		format, err := formatFor(opts.output)
		if err != nil {
			return err
		}
		if err := format.Render(cmd.OutOrStdout(), verdict); err != nil {
			return err
		}
	}

	if opts.failOn != "" {
		if max := formats.MaxFindingSeverity(verdict); max.Rank() >= failOn.Rank() {
			return fmt.Errorf("findings at or above %s severity (highest: %s)", failOn, max)
		}
	}

	return nil
}

func formatFor(name string) (formats.Format, error) {
	switch name {
	case "table":
		return formats.TableFormat{}, nil
	case "json":
		return verdictjson.Format{}, nil
	case "markdown":
		return formats.MarkdownFormat{}, nil
	case "sarif":
		return formats.SarifFormat{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}

func containsCheck(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
