// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/blang/semver/v4"
	"github.com/sylabs/vbump/internal/pkg/git"
	"github.com/sylabs/vbump/pkg/bump"
	"github.com/sylabs/vbump/pkg/manifest"
)

// ErrDirtyWorktree is returned when uncommitted changes would be mixed into
// a release commit.
var ErrDirtyWorktree = errors.New("uncommitted changes in working tree")

// bumpOpts contains configured options for a bump operation.
type bumpOpts struct {
	pre          bool
	preID        string
	manifest     string
	message      string
	tagPrefix    string
	tagPrefixSet bool
	signKey      string
	noCommit     bool
	allowDirty   bool
	dryRun       bool
}

// BumpOpt are used to configure optional bump behavior.
type BumpOpt func(*bumpOpts) error

// OptBumpPreRelease specifies that the new version must be a pre-release.
// If id is non-empty, it is used as the pre-release identifier.
func OptBumpPreRelease(id string) BumpOpt {
	return func(o *bumpOpts) error {
		o.pre = true
		o.preID = id
		return nil
	}
}

// OptBumpManifest specifies the manifest file to operate on. The directory
// containing path becomes the project directory.
func OptBumpManifest(path string) BumpOpt {
	return func(o *bumpOpts) error {
		o.manifest = path
		return nil
	}
}

// OptBumpMessage specifies the release commit message template. The template
// must contain the {v} placeholder.
func OptBumpMessage(tmpl string) BumpOpt {
	return func(o *bumpOpts) error {
		o.message = tmpl
		return nil
	}
}

// OptBumpTagPrefix specifies the release tag prefix, overriding the
// configured prefix. An empty prefix is permitted.
func OptBumpTagPrefix(prefix string) BumpOpt {
	return func(o *bumpOpts) error {
		o.tagPrefix = prefix
		o.tagPrefixSet = true
		return nil
	}
}

// OptBumpSignKey specifies the path of an armored PGP private key to sign
// the release commit and tag with.
func OptBumpSignKey(path string) BumpOpt {
	return func(o *bumpOpts) error {
		o.signKey = path
		return nil
	}
}

// OptBumpNoCommit specifies that the updated manifest must not be committed.
func OptBumpNoCommit() BumpOpt {
	return func(o *bumpOpts) error {
		o.noCommit = true
		return nil
	}
}

// OptBumpAllowDirty specifies that uncommitted changes in the working tree
// do not block the bump.
func OptBumpAllowDirty() BumpOpt {
	return func(o *bumpOpts) error {
		o.allowDirty = true
		return nil
	}
}

// OptBumpDryRun specifies that the bump result is reported without modifying
// the manifest or the repository.
func OptBumpDryRun() BumpOpt {
	return func(o *bumpOpts) error {
		o.dryRun = true
		return nil
	}
}

// Bump advances the project version according to strategy, writes the new
// version to the manifest, and records a release commit and tag.
func (a *App) Bump(strategy string, opts ...BumpOpt) error {
	bo := bumpOpts{}

	for _, opt := range opts {
		if err := opt(&bo); err != nil {
			return err
		}
	}

	dir, path, cfg, err := a.resolveProject(bo.manifest)
	if err != nil {
		return err
	}

	if bo.message != "" {
		cfg.Commit.Message = bo.message
	}
	if bo.tagPrefixSet {
		cfg.Tag.Prefix = bo.tagPrefix
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := bump.ParseStrategy(strategy)
	if err != nil {
		return err
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	cur := m.Version()

	next, err := bump.Next(cur, s, bump.NewPreMode(bo.pre, bo.preID))
	if err != nil {
		return err
	}

	if bo.dryRun {
		return a.writeSummary(cur, next, s, "")
	}

	if !bo.noCommit && !bo.allowDirty {
		if err := a.checkWorktree(dir, path, cfg.Ignore); err != nil {
			return err
		}
	}

	if err := m.Save(next); err != nil {
		return err
	}

	if bo.noCommit {
		return a.writeSummary(cur, next, s, "")
	}

	ro := []git.ReleaseOpt{
		git.OptReleaseMessage(cfg.Commit.Message),
		git.OptReleaseTagPrefix(cfg.Tag.Prefix),
	}

	if cfg.Tag.Message != "" {
		ro = append(ro, git.OptReleaseTagMessage(cfg.Tag.Message))
	}

	if keyPath := signKeyPath(dir, bo.signKey, cfg.Commit.SignKey); keyPath != "" {
		key, err := git.LoadSignKey(keyPath)
		if err != nil {
			return err
		}

		ro = append(ro, git.OptReleaseSignKey(key))
	}

	rel, err := git.CommitRelease(dir, next, path, ro...)
	if err != nil {
		return err
	}

	return a.writeSummary(cur, next, s, rel.TagName())
}

// checkWorktree fails when the working tree of the repository containing dir
// has uncommitted changes, ignoring the manifest itself and any configured
// ignore patterns.
func (a *App) checkWorktree(dir, manifest string, ignore []string) error {
	allow := make([]string, 0, len(ignore)+1)
	allow = append(allow, ignore...)

	rel, err := git.RelPath(dir, manifest)
	if err != nil {
		return err
	}
	allow = append(allow, rel)

	status, err := git.WorktreeStatus(dir, allow)
	if err != nil {
		return err
	}

	if !status.IsClean() {
		return fmt.Errorf("%w: %v", ErrDirtyWorktree, strings.Join(status.Dirty(), ", "))
	}

	return nil
}

// signKeyPath returns the path of the signing key to use, if any. A path
// from the configuration file resolves relative to the project directory. A
// path supplied as an option is used as given.
func signKeyPath(dir, explicit, configured string) string {
	if explicit != "" {
		return explicit
	}

	if configured == "" {
		return ""
	}

	if filepath.IsAbs(configured) {
		return configured
	}

	return filepath.Join(dir, configured)
}

// writeSummary reports the result of a bump. The tag line is present only
// when tag names a created tag.
func (a *App) writeSummary(prev, next semver.Version, s bump.Strategy, tag string) error {
	tw := tabwriter.NewWriter(a.opts.out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Previous Version:\t%v\n", prev)
	fmt.Fprintf(tw, "New Version:\t%v\n", next)
	fmt.Fprintf(tw, "Strategy:\t%v\n", s)

	if tag != "" {
		fmt.Fprintf(tw, "Tag:\t%v\n", tag)
	}

	return nil
}
