// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package vbump adds vbump commands to a parent cobra.Command.
package vbump

import (
	"github.com/spf13/cobra"
	"github.com/sylabs/vbump/internal/app/vbump"
)

// commandOpts contains configured options.
type commandOpts struct {
	rootPath string
	appOpts  []vbump.AppOpt
}

// CommandOpt are used to configure optional command behavior.
type CommandOpt func(*commandOpts) error

// OptWithAppOpts provides options to be used when creating the vbump app.
func OptWithAppOpts(opts ...vbump.AppOpt) CommandOpt {
	return func(co *commandOpts) error {
		co.appOpts = opts
		return nil
	}
}

// command describes a vbump command.
type command struct {
	opts commandOpts
	app  *vbump.App
}

// initApp initializes the vbump app for use by commands.
func (c *command) initApp(cmd *cobra.Command, args []string) error {
	opts := []vbump.AppOpt{
		vbump.OptAppOutput(cmd.OutOrStdout()),
	}
	opts = append(opts, c.opts.appOpts...)

	app, err := vbump.New(opts...)
	if err != nil {
		return err
	}
	c.app = app

	return nil
}

// AddCommands adds vbump commands to cmd according to opts.
//
// Commands are provided to bump the project version according to a release
// strategy, to read the version recorded in the project manifest, and to
// create a manifest for a project that does not have one.
func AddCommands(cmd *cobra.Command, opts ...CommandOpt) error {
	c := command{
		opts: commandOpts{
			rootPath: cmd.CommandPath(),
		},
	}

	for _, opt := range opts {
		if err := opt(&c.opts); err != nil {
			return err
		}
	}

	cmd.AddCommand(
		c.getBump(),
		c.getGet(),
		c.getInit(),
	)

	return nil
}
