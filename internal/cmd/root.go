/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cmd wires the pkgvet command line interface.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pkgvet",
	Short: "pkgvet: vet packages for supply chain risk before installing them",
	Long: `pkgvet interrogates a package with a set of risk checks
(registry metadata, maintainer reputation, typosquatting, install hooks,
and optional sandboxed behavior analysis) and aggregates the results
into a single risk verdict.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log verbosity (trace, debug, info, warn, error)")

	addVet(rootCmd)
	addTriage(rootCmd)
	addVersion(rootCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
