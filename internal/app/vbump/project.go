// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"path/filepath"

	"github.com/sylabs/vbump/internal/pkg/config"
)

// resolveProject locates the project directory, its configuration, and the
// path of the manifest an operation applies to. An explicit manifest path
// wins, and its directory becomes the project directory. Otherwise the
// manifest named by the project configuration is resolved relative to the
// directory the app operates in.
func (a *App) resolveProject(manifest string) (string, string, *config.Config, error) {
	dir := a.opts.dir
	if manifest != "" {
		dir = filepath.Dir(manifest)
	}

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return "", "", nil, err
	}

	if manifest == "" {
		manifest = filepath.Join(dir, cfg.Manifest)
	}

	return dir, manifest, cfg, nil
}
