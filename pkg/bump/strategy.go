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

// ReleaseType represents a named category of version increment.
type ReleaseType int

// List of supported release types.
const (
	Major    ReleaseType = iota + 1 // increment the major version
	Minor                           // increment the minor version
	Patch                           // increment the patch version
	Breaking                        // major increment, or minor while pre-1.0.0
	Release                         // finalize or advance a pre-release
	Build                           // increment the build metadata counter
)

// String returns a human-readable representation of t.
func (t ReleaseType) String() string {
	switch t {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Breaking:
		return "breaking"
	case Release:
		return "release"
	case Build:
		return "build"
	}
	return "unknown"
}

var ErrInvalidStrategy = errors.New("unrecognized release strategy")

// ParseReleaseType parses s as a release type. Matching is
// case-insensitive.
func ParseReleaseType(s string) (ReleaseType, error) {
	switch strings.ToLower(s) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	case "breaking":
		return Breaking, nil
	case "release":
		return Release, nil
	case "build":
		return Build, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// Strategy represents a parsed release strategy: either a named release
// type, or an exact target version.
type Strategy struct {
	rt     ReleaseType
	target *semver.Version
}

// ParseStrategy parses token as a release strategy. A token that parses as
// a semantic version denotes an exact target version; a leading "v" is
// tolerated. Any other token must name a release type.
func ParseStrategy(token string) (Strategy, error) {
	if v, err := semver.Parse(strings.TrimPrefix(token, "v")); err == nil {
		return Strategy{target: &v}, nil
	}

	rt, err := ParseReleaseType(token)
	if err != nil {
		return Strategy{}, err
	}

	return Strategy{rt: rt}, nil
}

// IsExact returns true if s denotes an exact target version.
func (s Strategy) IsExact() bool { return s.target != nil }

// String returns a human-readable representation of s.
func (s Strategy) String() string {
	if s.target != nil {
		return s.target.String()
	}
	return s.rt.String()
}

// PreMode expresses pre-release intent: none, an anonymous counter, or a
// named identifier with a counter.
type PreMode struct {
	pre bool
	id  string
}

// NewPreMode derives a pre-release mode from the pre flag and the optional
// identifier id. A non-empty id implies pre-release intent.
func NewPreMode(pre bool, id string) PreMode {
	return PreMode{pre: pre || id != "", id: id}
}

// None returns true if m expresses no pre-release intent.
func (m PreMode) None() bool { return !m.pre }
