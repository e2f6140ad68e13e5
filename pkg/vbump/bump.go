// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sylabs/vbump/internal/app/vbump"
)

var (
	pre          *bool
	preID        *string
	bumpManifest *string
	message      *string
	tagPrefix    *string
	signKey      *string
	noCommit     *bool
	allowDirty   *bool
	dryRun       *bool
)

// bumpFlags declares the command line flags for the bump command.
func bumpFlags(fs *pflag.FlagSet) {
	pre = fs.Bool("pre", false, "move to a pre-release of the target version")
	preID = fs.String("pre-id", "", "pre-release identifier (implies --pre)")
	bumpManifest = fs.String("manifest", "", "path of the version manifest")
	message = fs.String("message", "", "release commit message template (must contain {v})")
	tagPrefix = fs.String("tag-prefix", "", "release tag prefix (pass an empty string for none)")
	signKey = fs.String("sign-key", "", "path of an armored PGP private key to sign the release with")
	noCommit = fs.Bool("no-commit", false, "write the manifest without creating a release commit")
	allowDirty = fs.Bool("allow-dirty", false, "permit uncommitted changes in the working tree")
	dryRun = fs.Bool("dry-run", false, "report the new version without writing it")
}

// getBumpExamples returns bump command examples based on rootPath.
func getBumpExamples(rootPath string) string {
	examples := []string{
		rootPath + " bump patch",
		rootPath + " bump minor --pre --pre-id beta",
		rootPath + " bump release",
		rootPath + " bump 2.0.0 --manifest package.json",
	}
	return strings.Join(examples, "\n")
}

// getBumpOptions converts command line flags to bump options.
func getBumpOptions(fs *pflag.FlagSet) []vbump.BumpOpt {
	var opts []vbump.BumpOpt

	if *pre || *preID != "" {
		opts = append(opts, vbump.OptBumpPreRelease(*preID))
	}

	if *bumpManifest != "" {
		opts = append(opts, vbump.OptBumpManifest(*bumpManifest))
	}

	if *message != "" {
		opts = append(opts, vbump.OptBumpMessage(*message))
	}

	if fs.Changed("tag-prefix") {
		opts = append(opts, vbump.OptBumpTagPrefix(*tagPrefix))
	}

	if *signKey != "" {
		opts = append(opts, vbump.OptBumpSignKey(*signKey))
	}

	if *noCommit {
		opts = append(opts, vbump.OptBumpNoCommit())
	}

	if *allowDirty {
		opts = append(opts, vbump.OptBumpAllowDirty())
	}

	if *dryRun {
		opts = append(opts, vbump.OptBumpDryRun())
	}

	return opts
}

// getBump returns a command that advances the project version.
func (c *command) getBump() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump <strategy>",
		Short: "Bump project version",
		Long: `Advance the version recorded in the project manifest according to a release
strategy, and record the new version as a release commit and tag.

The strategy is one of major, minor, patch, breaking, release or build, or an
exact target version.`,
		Example: getBumpExamples(c.opts.rootPath),
		Args:    cobra.ExactArgs(1),
	}
	bumpFlags(cmd.Flags())

	cmd.PreRunE = c.initApp
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.app.Bump(args[0], getBumpOptions(cmd.Flags())...)
	}

	return cmd
}
