// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
Vbump is a program for managing project version manifests.

A set of commands are provided to read and advance the semantic version
recorded in a project manifest, and to record version bumps as release
commits and tags in the project repository.
*/
package main
