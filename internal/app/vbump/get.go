// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"fmt"

	"github.com/sylabs/vbump/pkg/manifest"
)

// Get reports the version recorded in the project manifest. A non-empty path
// overrides the configured manifest location.
func (a *App) Get(path string) error {
	_, mp, _, err := a.resolveProject(path)
	if err != nil {
		return err
	}

	m, err := manifest.Load(mp)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.opts.out, m.Version())
	return err
}
