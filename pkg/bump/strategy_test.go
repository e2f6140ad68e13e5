// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package bump

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantExact bool
		want      string
		wantErr   error
	}{
		{name: "Major", token: "major", want: "major"},
		{name: "Minor", token: "minor", want: "minor"},
		{name: "Patch", token: "patch", want: "patch"},
		{name: "Breaking", token: "breaking", want: "breaking"},
		{name: "Release", token: "release", want: "release"},
		{name: "Build", token: "build", want: "build"},
		{name: "MixedCase", token: "Patch", want: "patch"},
		{name: "UpperCase", token: "MAJOR", want: "major"},
		{name: "Exact", token: "1.2.3", wantExact: true, want: "1.2.3"},
		{name: "ExactPrefixed", token: "v1.2.3", wantExact: true, want: "1.2.3"},
		{name: "ExactPre", token: "1.2.3-rc.1", wantExact: true, want: "1.2.3-rc.1"},
		{name: "ExactBuild", token: "1.2.3+4", wantExact: true, want: "1.2.3+4"},
		{name: "Empty", token: "", wantErr: ErrInvalidStrategy},
		{name: "Unknown", token: "mangle", wantErr: ErrInvalidStrategy},
		{name: "PartialVersion", token: "1.2", wantErr: ErrInvalidStrategy},
		{name: "LeadingZero", token: "01.2.3", wantErr: ErrInvalidStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseStrategy(tt.token)
			if got, want := err, tt.wantErr; !errors.Is(got, want) {
				t.Fatalf("got error %v, want %v", got, want)
			}

			if tt.wantErr == nil {
				if got, want := s.IsExact(), tt.wantExact; got != want {
					t.Errorf("got exact %v, want %v", got, want)
				}

				if got, want := s.String(), tt.want; got != want {
					t.Errorf("got strategy %v, want %v", got, want)
				}
			}
		})
	}
}

func TestParseReleaseType(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    ReleaseType
		wantErr error
	}{
		{name: "Major", token: "major", want: Major},
		{name: "Minor", token: "minor", want: Minor},
		{name: "Patch", token: "patch", want: Patch},
		{name: "Breaking", token: "breaking", want: Breaking},
		{name: "Release", token: "release", want: Release},
		{name: "Build", token: "build", want: Build},
		{name: "MixedCase", token: "Breaking", want: Breaking},
		{name: "Unknown", token: "micro", wantErr: ErrInvalidStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := ParseReleaseType(tt.token)
			if got, want := err, tt.wantErr; !errors.Is(got, want) {
				t.Fatalf("got error %v, want %v", got, want)
			}

			if tt.wantErr == nil {
				if got, want := rt, tt.want; got != want {
					t.Errorf("got release type %v, want %v", got, want)
				}
			}
		})
	}
}

func TestNewPreMode(t *testing.T) {
	tests := []struct {
		name     string
		pre      bool
		id       string
		wantNone bool
	}{
		{name: "None", wantNone: true},
		{name: "Bare", pre: true},
		{name: "Named", id: "beta"},
		{name: "NamedImpliesPre", pre: false, id: "beta"},
		{name: "NamedWithPre", pre: true, id: "beta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPreMode(tt.pre, tt.id)

			if got, want := m.None(), tt.wantNone; got != want {
				t.Errorf("got none %v, want %v", got, want)
			}
		})
	}
}
