// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/sylabs/vbump/internal/pkg/git"
	"github.com/sylabs/vbump/pkg/manifest"
)

// initialVersion determines the version a new manifest starts at. An
// explicit version wins. Otherwise, when the project is in a repository
// with version tags, the version describing HEAD is used. Otherwise the
// version is 0.1.0.
func initialVersion(version, dir string) (semver.Version, error) {
	if version != "" {
		v, err := semver.Parse(strings.TrimPrefix(version, "v"))
		if err != nil {
			return semver.Version{}, fmt.Errorf("failed to parse version %q: %w", version, err)
		}
		return v, nil
	}

	if d, err := git.Describe(dir); err == nil {
		if v, err := d.Version(); err == nil {
			return v, nil
		}
	}

	return semver.Version{Minor: 1}, nil
}

// Init creates a project manifest recording version. If version is empty,
// the initial version is derived per initialVersion. A non-empty path
// overrides the configured manifest location.
func (a *App) Init(version, path string) error {
	dir, mp, _, err := a.resolveProject(path)
	if err != nil {
		return err
	}

	v, err := initialVersion(version, dir)
	if err != nil {
		return err
	}

	m, err := manifest.Create(mp, v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.opts.out, m.Version())
	return err
}
