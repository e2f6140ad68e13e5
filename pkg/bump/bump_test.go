// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bump

import (
	"errors"
	"testing"

	"github.com/blang/semver/v4"
)

func TestBump(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		strategy string
		pre      bool
		preID    string
		want     string
		wantErr  error
	}{
		{name: "Patch", current: "1.2.3", strategy: "patch", want: "1.2.4"},
		{name: "PatchPre", current: "1.2.3", strategy: "patch", pre: true, want: "1.2.4-0"},
		{name: "PatchPreID", current: "1.2.3", strategy: "patch", preID: "beta", want: "1.2.4-beta.0"},
		{name: "PatchOnPre", current: "1.2.3-0", strategy: "patch", want: "1.2.3"},
		{name: "PatchOnPrePre", current: "1.2.3-0", strategy: "patch", pre: true, want: "1.2.3-1"},
		{name: "Minor", current: "1.2.3", strategy: "minor", want: "1.3.0"},
		{name: "MinorPre", current: "1.2.3", strategy: "minor", pre: true, want: "1.3.0-0"},
		{name: "MinorOnMinorPre", current: "1.3.0-0", strategy: "minor", pre: true, want: "1.3.0-1"},
		{name: "MinorOnPatchPre", current: "1.3.1-0", strategy: "minor", pre: true, want: "1.4.0-0"},
		{name: "Major", current: "1.2.3", strategy: "major", want: "2.0.0"},
		{name: "MajorPreID", current: "1.2.3", strategy: "major", preID: "beta", want: "2.0.0-beta.0"},
		{name: "MajorOnMajorPre", current: "2.0.0-beta.0", strategy: "major", preID: "beta", want: "2.0.0-beta.1"},
		{name: "MajorOnMinorPre", current: "2.1.0-beta.0", strategy: "major", want: "3.0.0"},
		{name: "BreakingPreOne", current: "0.5.0", strategy: "breaking", want: "0.6.0"},
		{name: "Breaking", current: "1.5.0", strategy: "breaking", want: "2.0.0"},
		{name: "Release", current: "1.0.0-dev.2", strategy: "release", want: "1.0.0"},
		{name: "ReleasePre", current: "1.0.0-dev.2", strategy: "release", pre: true, want: "1.0.0-dev.3"},
		{name: "ReleaseSwitchID", current: "1.0.0-dev.2", strategy: "release", preID: "rc", want: "1.0.0-rc.0"},
		{name: "ReleaseSameID", current: "1.0.0-dev.2", strategy: "release", preID: "dev", want: "1.0.0-dev.3"},
		{name: "ReleaseBare", current: "1.0.0-2", strategy: "release", pre: true, want: "1.0.0-3"},
		{name: "ReleaseStripsOddShape", current: "1.0.0-alpha.1.2", strategy: "release", want: "1.0.0"},
		{name: "ReleaseNotOnPre", current: "1.0.0", strategy: "release", wantErr: ErrNotPreRelease},
		{name: "Build", current: "1.2.3", strategy: "build", want: "1.2.3+1"},
		{name: "BuildIncrement", current: "1.2.3+3", strategy: "build", want: "1.2.3+4"},
		{name: "BuildKeepsPre", current: "1.2.3-beta.1+3", strategy: "build", want: "1.2.3-beta.1+4"},
		{name: "BuildNonInteger", current: "1.2.3+abc", strategy: "build", wantErr: ErrUnsupportedBuild},
		{name: "BuildMultiple", current: "1.2.3+1.2", strategy: "build", wantErr: ErrUnsupportedBuild},
		{name: "BuildWithPre", current: "1.2.3", strategy: "build", pre: true, wantErr: ErrPreReleaseWithBuild},
		{name: "BuildWithPreID", current: "1.2.3", strategy: "build", preID: "beta", wantErr: ErrPreReleaseWithBuild},
		{name: "Exact", current: "1.2.3", strategy: "2.0.0", want: "2.0.0"},
		{name: "ExactPrefixed", current: "1.2.3", strategy: "v2.0.0", want: "2.0.0"},
		{name: "ExactDowngrade", current: "1.2.3", strategy: "1.0.0", want: "1.0.0"},
		{name: "ExactWithPre", current: "1.2.3", strategy: "2.0.0", pre: true, want: "2.0.0-0"},
		{name: "ExactWithPreID", current: "1.2.3", strategy: "2.0.0", preID: "rc", want: "2.0.0-rc.0"},
		{name: "ExactOwnPre", current: "1.2.3", strategy: "2.0.0-rc.1", want: "2.0.0-rc.1"},
		{name: "ExactConflictingPre", current: "1.2.3", strategy: "2.0.0-rc.1", pre: true, wantErr: ErrConflictingPreRelease},
		{name: "ExactConflictingPreID", current: "1.2.3", strategy: "2.0.0-rc.1", preID: "rc", wantErr: ErrConflictingPreRelease},
		{name: "ExactNoOp", current: "1.2.3", strategy: "1.2.3", wantErr: ErrNoChange},
		{name: "ExactNoOpPre", current: "1.2.3-0", strategy: "1.2.3-0", wantErr: ErrNoChange},
		{name: "ClearsBuildOnPatch", current: "1.2.3+7", strategy: "patch", want: "1.2.4"},
		{name: "ClearsBuildOnRelease", current: "1.0.0-dev.2+7", strategy: "release", want: "1.0.0"},
		{name: "UnsupportedPreShape", current: "1.2.3-alpha.1.2", strategy: "patch", pre: true, wantErr: ErrUnsupportedPreRelease},
		{name: "UnsupportedPreShapeString", current: "1.2.3-alpha", strategy: "release", pre: true, wantErr: ErrUnsupportedPreRelease},
		{name: "InvalidStrategy", current: "1.2.3", strategy: "mangle", wantErr: ErrInvalidStrategy},
		{name: "InvalidStrategyPartial", current: "1.2.3", strategy: "1.2", wantErr: ErrInvalidStrategy},
		{name: "InvalidPreID", current: "1.2.3", strategy: "patch", preID: "7", wantErr: ErrInvalidPreID},
		{name: "InvalidPreIDChars", current: "1.2.3", strategy: "patch", preID: "beta_1", wantErr: ErrInvalidPreID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := semver.MustParse(tt.current)

			v, err := Bump(cur, tt.strategy, tt.pre, tt.preID)
			if got, want := err, tt.wantErr; !errors.Is(got, want) {
				t.Fatalf("got error %v, want %v", got, want)
			}

			if tt.wantErr == nil {
				if got, want := v.String(), tt.want; got != want {
					t.Errorf("got version %v, want %v", got, want)
				}
			}
		})
	}
}

func TestNextIsGreater(t *testing.T) {
	versions := []string{
		"0.0.1",
		"0.5.0",
		"1.0.0",
		"1.2.3",
		"1.2.3+3",
		"1.2.3-0",
		"1.0.0-dev.2",
		"2.3.4-beta.7",
	}
	strategies := []string{"major", "minor", "patch", "breaking"}

	for _, version := range versions {
		for _, strategy := range strategies {
			t.Run(version+"/"+strategy, func(t *testing.T) {
				cur := semver.MustParse(version)

				v, err := Bump(cur, strategy, false, "")
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if !v.GT(cur) {
					t.Errorf("version %v does not follow %v", v, cur)
				}
			})
		}
	}
}

func TestNextDoesNotModifyCurrent(t *testing.T) {
	cur := semver.MustParse("1.0.0-dev.2+3")
	want := cur.String()

	if _, err := Bump(cur, "release", true, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cur.String(); got != want {
		t.Errorf("current version modified: got %v, want %v", got, want)
	}
}

func TestBreakingMatchesMinorOrMajor(t *testing.T) {
	tests := []struct {
		name    string
		current string
		matches ReleaseType
	}{
		{name: "PreOne", current: "0.5.3", matches: Minor},
		{name: "PostOne", current: "1.5.3", matches: Major},
		{name: "PreOnePre", current: "0.5.0-0", matches: Minor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := semver.MustParse(tt.current)

			v, err := Next(cur, Strategy{rt: Breaking}, PreMode{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			w, err := Next(cur, Strategy{rt: tt.matches}, PreMode{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got, want := v.String(), w.String(); got != want {
				t.Errorf("got version %v, want %v", got, want)
			}
		})
	}
}

func TestBareSequence(t *testing.T) {
	v := semver.MustParse("1.2.3")

	v, err := Bump(v, "patch", true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := v.String(), "1.2.4-0"; got != want {
		t.Fatalf("got version %v, want %v", got, want)
	}

	v, err = Bump(v, "release", true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := v.String(), "1.2.4-1"; got != want {
		t.Fatalf("got version %v, want %v", got, want)
	}
}
