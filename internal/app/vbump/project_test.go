// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var testTime = time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)

// initProject creates a git repository in a temporary directory, writes
// files into it, and commits them. A local author identity is configured so
// that release commits do not depend on the environment.
func initProject(t *testing.T, files map[string]string) (*git.Repository, string) {
	t.Helper()

	dir := t.TempDir()

	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := r.Config()
	if err != nil {
		t.Fatal(err)
	}
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	if err := r.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}

	w, err := r.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := w.Add(name); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := w.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: testTime},
	}); err != nil {
		t.Fatal(err)
	}

	return r, dir
}

// headHash returns the hash of HEAD.
func headHash(t *testing.T, r *git.Repository) string {
	t.Helper()

	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}

	return head.Hash().String()
}

// readFile returns the content of the file at path.
func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}
