// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_command_getBump(t *testing.T) {
	tests := []struct {
		name    string
		opts    commandOpts
		content string
		args    []string
		want    string
	}{
		{
			name:    "PatchNoCommit",
			content: "1.2.3\n",
			args:    []string{"patch", "--no-commit"},
			want:    "1.2.4\n",
		},
		{
			name:    "MinorPreID",
			content: "1.2.3\n",
			args:    []string{"minor", "--pre-id", "beta", "--no-commit"},
			want:    "1.3.0-beta.0\n",
		},
		{
			name:    "ReleasePre",
			content: "2.0.0-beta.0\n",
			args:    []string{"release", "--pre", "--no-commit"},
			want:    "2.0.0-beta.1\n",
		},
		{
			name:    "DryRun",
			content: "1.2.3\n",
			args:    []string{"major", "--dry-run"},
			want:    "1.2.3\n",
		},
		{
			name:    "Exact",
			content: "1.2.3\n",
			args:    []string{"2.0.0", "--no-commit"},
			want:    "2.0.0\n",
		},
		{
			name:    "Build",
			content: "1.2.3+7\n",
			args:    []string{"build", "--no-commit"},
			want:    "1.2.3+8\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".version")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			c := &command{opts: tt.opts}

			cmd := c.getBump()

			runCommand(t, cmd, append(tt.args, "--manifest", path))

			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := string(b), tt.want; got != want {
				t.Errorf("got manifest %q, want %q", got, want)
			}
		})
	}
}
