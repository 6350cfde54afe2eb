/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package checks

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pkgvet/pkgvet/internal/sandbox"
	"github.com/pkgvet/pkgvet/pkg/vet"
)

// ResolveOptions carries the collaborators checks may need.
type ResolveOptions struct {
	// Runtime is the isolation backend for the behavior check. Probed
	// once here; the behavior check is activated in degraded mode when
	// the probe fails.
	Runtime sandbox.Runtime

	// SensitivePaths overrides the classifier's sensitive path prefixes.
	SensitivePaths []string

	// SourceDir is an optional local copy of the package source for the
	// install-hooks check.
	SourceDir string

	Logger logrus.FieldLogger
}

// Resolve expands a configured list of check names into check instances,
// preserving order. Unknown names are logged and skipped.
func Resolve(ctx context.Context, names []string, opts ResolveOptions) []vet.Check {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	var active []vet.Check
	for _, name := range names {
		switch name {
		case "metadata":
			active = append(active, MetadataCheck{})
		case "maintainer":
			active = append(active, NewMaintainerCheck())
		case "typosquat":
			active = append(active, TyposquatCheck{})
		case "install_hooks":
			active = append(active, InstallHooksCheck{SourceDir: opts.SourceDir})
		case "behavior":
			available := opts.Runtime != nil && opts.Runtime.ProbeAvailable(ctx)
			if !available {
				log.Warn("isolation backend unavailable, behavior check will run degraded")
			}
			classifier := sandbox.NewClassifier(opts.SensitivePaths)
			active = append(active, NewBehaviorCheck(opts.Runtime, available, classifier, log))
		default:
			log.Warnf("unknown check %q, skipping", name)
		}
	}

	return active
}
