/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

package sandbox

import (
	"fmt"
	"regexp"
	"strings"
)

// TraceRecord is the parsed system-call trace, partitioned into the three
// call families the classifier cares about. Lists hold the raw trace lines.
type TraceRecord struct {
	NetworkCalls   []string
	FileOperations []string
	ProcessSpawns  []string
}

// syscallRe extracts the call name from one strace line, tolerating the
// "[pid NNN]" prefix strace emits under -f.
var syscallRe = regexp.MustCompile(`^(?:\[pid\s+\d+\]\s*)?([a-z_][a-z0-9_]*)\(`)

// pathRe extracts the first quoted absolute path argument of a file call.
var pathRe = regexp.MustCompile(`"(/[^"]*)"`)

var (
	networkCalls = map[string]struct{}{
		"socket": {}, "connect": {}, "bind": {}, "accept": {},
		"accept4": {}, "sendto": {}, "recvfrom": {}, "sendmsg": {}, "recvmsg": {},
	}
	fileCalls = map[string]struct{}{
		"open": {}, "openat": {}, "creat": {}, "read": {}, "write": {},
		"unlink": {}, "unlinkat": {}, "rename": {}, "chmod": {},
	}
	spawnCalls = map[string]struct{}{
		"fork": {}, "vfork": {}, "clone": {}, "execve": {}, "execveat": {},
	}
)

// ParseTrace partitions raw trace text into the three call families.
// Lines matching no family are ignored; empty input yields empty lists.
func ParseTrace(raw string) TraceRecord {
	var rec TraceRecord

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := syscallRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		call := m[1]

		switch {
		case isIn(networkCalls, call):
			rec.NetworkCalls = append(rec.NetworkCalls, line)
		case isIn(fileCalls, call):
			rec.FileOperations = append(rec.FileOperations, line)
		case isIn(spawnCalls, call):
			rec.ProcessSpawns = append(rec.ProcessSpawns, line)
		}
	}

	return rec
}

func isIn(set map[string]struct{}, call string) bool {
	_, ok := set[call]
	return ok
}

// DefaultSensitivePaths are the path prefixes whose file access is treated
// as suspicious.
var DefaultSensitivePaths = []string{"/etc", "/root", "/home", "/tmp"}

// Classifier derives suspicion findings from a parsed trace.
type Classifier struct {
	sensitivePaths []string
}

// NewClassifier builds a classifier over the given sensitive path prefixes,
// or DefaultSensitivePaths when nil.
func NewClassifier(sensitivePaths []string) Classifier {
	if sensitivePaths == nil {
		sensitivePaths = DefaultSensitivePaths
	}
	return Classifier{sensitivePaths: sensitivePaths}
}

// SensitiveHits counts file operations under each configured sensitive
// prefix, keyed by prefix. Prefixes with no hits are omitted.
func (c Classifier) SensitiveHits(rec TraceRecord) map[string]int {
	hits := map[string]int{}

	for _, op := range rec.FileOperations {
		m := pathRe.FindStringSubmatch(op)
		if m == nil {
			continue
		}
		path := m[1]

		for _, prefix := range c.sensitivePaths {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				hits[prefix]++
			}
		}
	}

	return hits
}

// SensitivePrefixes returns the sensitive prefixes hit by the trace, in
// configuration order.
func (c Classifier) SensitivePrefixes(rec TraceRecord) []string {
	hits := c.SensitiveHits(rec)

	var prefixes []string
	for _, prefix := range c.sensitivePaths {
		if hits[prefix] > 0 {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}

// Classify derives human-readable suspicion findings from a trace. Each
// rule is independently additive; a trace with no activity of any kind
// yields an empty list.
func (c Classifier) Classify(rec TraceRecord) []string {
	var findings []string

	if n := len(rec.NetworkCalls); n > 0 {
		findings = append(findings, fmt.Sprintf("Network activity detected: %d network calls", n))
	}

	hits := c.SensitiveHits(rec)
	for _, prefix := range c.sensitivePaths {
		if count := hits[prefix]; count > 0 {
			findings = append(findings, fmt.Sprintf("Suspicious file access under %s: %d operations", prefix, count))
		}
	}

	if n := len(rec.ProcessSpawns); n > 0 {
		findings = append(findings, fmt.Sprintf("Process spawning detected: %d spawns", n))
	}

	return findings
}
