/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"
	"sigs.k8s.io/release-utils/version"
)

func addVersion(parentCmd *cobra.Command) {
	parentCmd.AddCommand(version.WithFont("doom"))
}
