/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package verdictjson reads and writes the canonical JSON encoding of a
// verdict, the format consumed by `pkgvet triage`.
package verdictjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// Format renders verdicts as indented JSON.
type Format struct{}

// Render implements formats.Format.
func (Format) Render(w io.Writer, v *vet.Verdict) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling verdict: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing verdict: %w", err)
	}

	return nil
}

// Parse decodes a verdict previously written by Render.
func Parse(input io.Reader) (*vet.Verdict, error) {
	dec := json.NewDecoder(input)
	v := new(vet.Verdict)
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("unable to parse verdict JSON data: %w", err)
	}

	return v, nil
}
