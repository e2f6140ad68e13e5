// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var initManifest *string

// initFlags declares the command line flags for the init command.
func initFlags(fs *pflag.FlagSet) {
	initManifest = fs.String("manifest", "", "path of the version manifest to create")
}

// getInitExamples returns init command examples based on rootPath.
func getInitExamples(rootPath string) string {
	examples := []string{
		rootPath + " init",
		rootPath + " init 1.0.0 --manifest package.json",
	}
	return strings.Join(examples, "\n")
}

// getInit returns a command that creates a version manifest.
func (c *command) getInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [version]",
		Short: "Create version manifest",
		Long: `Create a version manifest for a project that does not have one.

If version is omitted, the initial version is taken from the most recent
version tag of the project repository, or failing that, 0.1.0.`,
		Example: getInitExamples(c.opts.rootPath),
		Args:    cobra.MaximumNArgs(1),
	}
	initFlags(cmd.Flags())

	cmd.PreRunE = c.initApp
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		version := ""
		if len(args) > 0 {
			version = args[0]
		}

		return c.app.Init(version, *initManifest)
	}

	return cmd
}
