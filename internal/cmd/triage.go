/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pkgvet/pkgvet/internal/triage"
	"github.com/pkgvet/pkgvet/pkg/formats"
	"github.com/pkgvet/pkgvet/pkg/formats/verdictjson"
)

func addTriage(parentCmd *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "triage <verdict.json>",
		Short: "Browse a saved verdict's findings interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// resolve input file

			verdictFilepath := args[0]
			f, err := os.Open(verdictFilepath)
			if err != nil {
				return err
			}
			defer f.Close()

			verdict, err := verdictjson.Parse(f)
			if err != nil {
				return err
			}

			// start app

			p := tea.NewProgram(triage.New(formats.Rows(verdict)), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}

			return nil
		},
	}

	parentCmd.AddCommand(cmd)
}
