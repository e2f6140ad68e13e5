// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package vbump

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var getManifest *string

// getFlags declares the command line flags for the get command.
func getFlags(fs *pflag.FlagSet) {
	getManifest = fs.String("manifest", "", "path of the version manifest")
}

// getGet returns a command that prints the project version.
func (c *command) getGet() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get",
		Short:   "Print project version",
		Long:    "Print the version recorded in the project manifest.",
		Example: c.opts.rootPath + " get",
		Args:    cobra.ExactArgs(0),
	}
	getFlags(cmd.Flags())

	cmd.PreRunE = c.initApp
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.app.Get(*getManifest)
	}

	return cmd
}
