// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package bump computes semantic version bumps.
//
// Given a current version, a release strategy and a pre-release mode, the
// package produces the version that follows. A strategy is either a named
// release type (major, minor, patch, breaking, release, build) or an exact
// target version. Pre-release sequences are held to two canonical shapes, a
// bare numeric counter ("1.2.3-0") and a named counter ("1.2.3-beta.0"),
// which order correctly under semantic version precedence.
//
// All operations are pure: inputs are never modified, and each call
// computes its result from its arguments alone.
package bump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

var (
	ErrNoChange              = errors.New("new version equals current version")
	ErrNotPreRelease         = errors.New("not currently on a pre-release")
	ErrPreReleaseWithBuild   = errors.New("pre-release cannot be combined with a build bump")
	ErrConflictingPreRelease = errors.New("exact version already specifies a pre-release")
	ErrUnsupportedBuild      = errors.New("unsupported build metadata format")
)

// Bump parses token as a release strategy and computes the version that
// follows current. It is shorthand for ParseStrategy followed by Next.
func Bump(current semver.Version, token string, pre bool, preID string) (semver.Version, error) {
	s, err := ParseStrategy(token)
	if err != nil {
		return semver.Version{}, err
	}

	return Next(current, s, NewPreMode(pre, preID))
}

// Next computes the version that follows cur under strategy s and
// pre-release mode m. The current version is never modified; on error, no
// partial result is returned.
func Next(cur semver.Version, s Strategy, m PreMode) (semver.Version, error) {
	var next semver.Version
	var err error

	if s.target != nil {
		next, err = nextExact(*s.target, m)
	} else {
		next, err = nextRelease(cur, s.rt, m)
	}
	if err != nil {
		return semver.Version{}, err
	}

	// Build metadata carries no precedence, so compare rendered strings
	// rather than semantic equality.
	if next.String() == cur.String() {
		return semver.Version{}, fmt.Errorf("%w: %s", ErrNoChange, next)
	}

	return next, nil
}

// nextExact validates an exact target version against m, initializing a
// pre-release on the target when one is requested.
func nextExact(target semver.Version, m PreMode) (semver.Version, error) {
	if len(target.Pre) > 0 {
		if !m.None() {
			return semver.Version{}, fmt.Errorf("%w: %s", ErrConflictingPreRelease, target)
		}
		return target, nil
	}

	if !m.None() {
		pre, err := nextPre(nil, m)
		if err != nil {
			return semver.Version{}, err
		}
		target.Pre = pre
	}

	return target, nil
}

// nextRelease applies release type t to cur.
func nextRelease(cur semver.Version, t ReleaseType, m PreMode) (semver.Version, error) {
	isPre := len(cur.Pre) > 0

	switch t {
	case Major:
		// A pre-release of x.0.0 is already targeting a major bump.
		if isPre && cur.Minor == 0 && cur.Patch == 0 {
			return advance(cur, m)
		}
		return increment(cur.Major+1, 0, 0, m)

	case Minor:
		if isPre && cur.Patch == 0 {
			return advance(cur, m)
		}
		return increment(cur.Major, cur.Minor+1, 0, m)

	case Patch:
		if isPre {
			return advance(cur, m)
		}
		return increment(cur.Major, cur.Minor, cur.Patch+1, m)

	case Breaking:
		if cur.Major == 0 {
			return nextRelease(cur, Minor, m)
		}
		return nextRelease(cur, Major, m)

	case Release:
		if !isPre {
			return semver.Version{}, fmt.Errorf("%w: %s", ErrNotPreRelease, cur)
		}
		return advance(cur, m)

	case Build:
		if !m.None() {
			return semver.Version{}, ErrPreReleaseWithBuild
		}
		return nextBuild(cur)
	}

	return semver.Version{}, fmt.Errorf("%w: %v", ErrInvalidStrategy, t)
}

// advance holds the version triplet of cur fixed and advances its
// pre-release sequence according to m. Build metadata is cleared.
func advance(cur semver.Version, m PreMode) (semver.Version, error) {
	pre, err := nextPre(cur.Pre, m)
	if err != nil {
		return semver.Version{}, err
	}

	return semver.Version{
		Major: cur.Major,
		Minor: cur.Minor,
		Patch: cur.Patch,
		Pre:   pre,
	}, nil
}

// increment returns version major.minor.patch with a pre-release sequence
// initialized according to m. Build metadata is cleared.
func increment(major, minor, patch uint64, m PreMode) (semver.Version, error) {
	pre, err := nextPre(nil, m)
	if err != nil {
		return semver.Version{}, err
	}

	return semver.Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Pre:   pre,
	}, nil
}

// nextBuild increments the build metadata counter of cur, initializing it
// to 1 when absent. The version triplet and pre-release are untouched.
func nextBuild(cur semver.Version) (semver.Version, error) {
	var n uint64

	switch len(cur.Build) {
	case 0:
		n = 1
	case 1:
		b, err := strconv.ParseUint(cur.Build[0], 10, 64)
		if err != nil {
			return semver.Version{}, fmt.Errorf("%w: %q", ErrUnsupportedBuild, strings.Join(cur.Build, "."))
		}
		n = b + 1
	default:
		return semver.Version{}, fmt.Errorf("%w: %q", ErrUnsupportedBuild, strings.Join(cur.Build, "."))
	}

	pre := make([]semver.PRVersion, len(cur.Pre))
	copy(pre, cur.Pre)

	return semver.Version{
		Major: cur.Major,
		Minor: cur.Minor,
		Patch: cur.Patch,
		Pre:   pre,
		Build: []string{strconv.FormatUint(n, 10)},
	}, nil
}
