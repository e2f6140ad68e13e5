// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

var (
	ErrUnsupportedPreRelease = errors.New("unsupported pre-release format")
	ErrInvalidPreID          = errors.New("invalid pre-release identifier")
)

// nextPre computes the pre-release sequence that follows cur under mode m.
// Mode None always yields an empty sequence. Otherwise the engine
// understands two shapes: a bare numeric counter [n], and a named counter
// [id, n]. Anything else cannot be advanced safely.
func nextPre(cur []semver.PRVersion, m PreMode) ([]semver.PRVersion, error) {
	if m.None() {
		return nil, nil
	}

	if m.id != "" {
		// The identifier must remain a string component, or the result
		// could not be advanced again.
		if pr, err := semver.NewPRVersion(m.id); err != nil || pr.IsNum {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPreID, m.id)
		}
	}

	switch {
	case len(cur) == 0:
		return initPre(m), nil

	case len(cur) == 1 && cur[0].IsNum:
		if m.id != "" {
			return initPre(m), nil
		}
		return []semver.PRVersion{numPR(cur[0].VersionNum + 1)}, nil

	case len(cur) == 2 && !cur[0].IsNum && cur[1].IsNum:
		if m.id == "" || m.id == cur[0].VersionStr {
			return []semver.PRVersion{strPR(cur[0].VersionStr), numPR(cur[1].VersionNum + 1)}, nil
		}
		return initPre(m), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedPreRelease, preString(cur))
}

// initPre returns a fresh pre-release sequence for m.
func initPre(m PreMode) []semver.PRVersion {
	if m.id != "" {
		return []semver.PRVersion{strPR(m.id), numPR(0)}
	}
	return []semver.PRVersion{numPR(0)}
}

func numPR(n uint64) semver.PRVersion {
	return semver.PRVersion{VersionNum: n, IsNum: true}
}

func strPR(s string) semver.PRVersion {
	return semver.PRVersion{VersionStr: s}
}

// preString renders pre as a dot-separated pre-release suffix.
func preString(pre []semver.PRVersion) string {
	parts := make([]string, 0, len(pre))
	for _, p := range pre {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ".")
}
