/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package vet

import "context"

// Check is one pluggable risk-evaluation unit. Implementations must be safe
// for concurrent use, must not mutate the metadata they are handed, and must
// self-bound any network or process I/O: a check that cannot evaluate
// returns a degraded CheckResult instead of hanging or erroring out.
//
// An error (or panic) returned from Analyze is recovered by the
// interrogator and converted into a synthetic zero-confidence result; it
// never propagates to the caller.
type Check interface {
	// Name is the stable identifier used as the key in scoring weights
	// and in the resulting CheckResult.
	Name() string

	Analyze(ctx context.Context, md *PackageMetadata) (CheckResult, error)
}
