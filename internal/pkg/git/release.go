// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/blang/semver/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/gobwas/glob"
)

// Status reports the cleanliness of a git working tree.
type Status struct {
	dirty []string
}

// IsClean returns true if the working tree holds no unexpected
// modifications.
func (s *Status) IsClean() bool { return len(s.dirty) == 0 }

// Dirty returns the paths with unexpected modifications, relative to the
// root of the working tree.
func (s *Status) Dirty() []string { return s.dirty }

// WorktreeStatus reports the state of the working tree of the repository
// containing path. Modified or untracked paths matching a pattern in allow
// are disregarded. Patterns are matched against paths relative to the root
// of the working tree, with '/' as the separator.
func WorktreeStatus(path string, allow []string) (*Status, error) {
	globs := make([]glob.Glob, 0, len(allow))
	for _, pattern := range allow {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	r, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := w.Status()
	if err != nil {
		return nil, err
	}

	var dirty []string
	for p, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}

		allowed := false
		for _, g := range globs {
			if g.Match(p) {
				allowed = true
				break
			}
		}
		if !allowed {
			dirty = append(dirty, p)
		}
	}
	sort.Strings(dirty)

	return &Status{dirty: dirty}, nil
}

// RelPath returns the path of file relative to the root of the working
// tree containing path, with '/' as the separator.
func RelPath(path, file string) (string, error) {
	r, err := openRepo(path)
	if err != nil {
		return "", err
	}

	w, err := r.Worktree()
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(w.Filesystem.Root(), abs)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// releaseOpts accumulates options for CommitRelease.
type releaseOpts struct {
	message    string
	tagMessage string
	tagPrefix  string
	name       string
	email      string
	when       time.Time
	signKey    *openpgp.Entity
}

// ReleaseOpt are used to configure release creation.
type ReleaseOpt func(*releaseOpts) error

// OptReleaseMessage sets the commit message template. The literal "{v}" is
// replaced with the rendered version.
func OptReleaseMessage(tmpl string) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.message = tmpl
		return nil
	}
}

// OptReleaseTagMessage sets the tag message template, overriding the commit
// message template.
func OptReleaseTagMessage(tmpl string) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.tagMessage = tmpl
		return nil
	}
}

// OptReleaseTagPrefix sets the prefix of the tag name.
func OptReleaseTagPrefix(prefix string) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.tagPrefix = prefix
		return nil
	}
}

// OptReleaseAuthor sets the author identity, overriding the repository
// configuration.
func OptReleaseAuthor(name, email string) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.name = name
		ro.email = email
		return nil
	}
}

// OptReleaseTime sets the commit and tag timestamp.
func OptReleaseTime(t time.Time) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.when = t
		return nil
	}
}

// OptReleaseSignKey signs the commit and tag with entity e.
func OptReleaseSignKey(e *openpgp.Entity) ReleaseOpt {
	return func(ro *releaseOpts) error {
		ro.signKey = e
		return nil
	}
}

// Release describes a release commit and the tag pointing at it.
type Release struct {
	commit plumbing.Hash
	tag    string
}

// CommitHash returns the hash of the release commit.
func (r *Release) CommitHash() string { return r.commit.String() }

// TagName returns the name of the release tag.
func (r *Release) TagName() string { return r.tag }

var errNoAuthor = errors.New("author identity not configured")

// signature resolves the identity recorded on the release commit and tag.
func signature(r *git.Repository, ro *releaseOpts) (*object.Signature, error) {
	name, email := ro.name, ro.email

	if name == "" || email == "" {
		cfg, err := r.ConfigScoped(config.SystemScope)
		if err != nil {
			return nil, err
		}

		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}

	if name == "" && email == "" {
		return nil, errNoAuthor
	}

	when := ro.when
	if when.IsZero() {
		when = time.Now()
	}

	return &object.Signature{Name: name, Email: email, When: when}, nil
}

// renderMessage expands the "{v}" placeholder in tmpl.
func renderMessage(tmpl string, v semver.Version) string {
	return strings.ReplaceAll(tmpl, "{v}", v.String())
}

// CommitRelease stages manifest, commits it, and creates an annotated tag
// pointing at the new commit. The commit and tag messages are derived from
// templates in which the literal "{v}" is replaced by the rendered version
// v; the tag is named after v with the configured prefix.
func CommitRelease(path string, v semver.Version, manifest string, opts ...ReleaseOpt) (*Release, error) {
	ro := releaseOpts{
		message:   "{v}",
		tagPrefix: "v",
	}

	for _, opt := range opts {
		if err := opt(&ro); err != nil {
			return nil, err
		}
	}

	if ro.tagMessage == "" {
		ro.tagMessage = ro.message
	}

	r, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, err
	}

	rel, err := RelPath(path, manifest)
	if err != nil {
		return nil, err
	}

	if _, err := w.Add(rel); err != nil {
		return nil, fmt.Errorf("failed to stage %v: %w", rel, err)
	}

	sig, err := signature(r, &ro)
	if err != nil {
		return nil, err
	}

	hash, err := w.Commit(renderMessage(ro.message, v), &git.CommitOptions{
		Author:  sig,
		SignKey: ro.signKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	tag := ro.tagPrefix + v.String()

	if _, err := r.CreateTag(tag, hash, &git.CreateTagOptions{
		Tagger:  sig,
		Message: renderMessage(ro.tagMessage, v),
		SignKey: ro.signKey,
	}); err != nil {
		return nil, fmt.Errorf("failed to tag %v: %w", tag, err)
	}

	return &Release{commit: hash, tag: tag}, nil
}

var errKeyCount = errors.New("key file must contain exactly one private key")

// LoadSignKey reads an armored PGP private key from path.
func LoadSignKey(path string) (*openpgp.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key: %w", err)
	}
	defer f.Close()

	el, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	if got, want := len(el), 1; got != want {
		return nil, fmt.Errorf("%w: got %v", errKeyCount, got)
	}

	return el[0], nil
}
