// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package manifest reads and writes version manifest files.
//
// Three manifest layouts are supported: a raw file containing nothing but
// the version string, a JSON document with a top-level "version" field, and
// a YAML document with a top-level version key. Saving splices the new
// version into the original bytes, so the surrounding document, its
// formatting and its comments are preserved. A leading "v" on the stored
// version is preserved as well.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// Format represents the on-disk layout of a version manifest.
type Format int

// List of supported manifest formats.
const (
	FormatRaw  Format = iota + 1 // whole file is the version string
	FormatJSON                   // top-level "version" field
	FormatYAML                   // top-level version key
)

// String returns a human-readable representation of f.
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// detectFormat returns the format implied by the extension of path.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatRaw
}

var (
	ErrExist             = errors.New("manifest already exists")
	ErrNoVersion         = errors.New("no version found in manifest")
	ErrVersionNotLocated = errors.New("unable to locate version literal for rewrite")
)

// File represents a loaded version manifest.
type File struct {
	path     string
	format   Format
	raw      []byte
	version  semver.Version
	prefixed bool // version literal carries a leading "v"
	begin    int  // byte span of the version literal within raw
	end      int
}

// Load reads the version manifest at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	f := &File{
		path:   path,
		format: detectFormat(path),
		raw:    b,
	}

	if err := f.locate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Create writes a new manifest at path containing version v, laid out
// according to the extension of path. Create fails if path already exists.
func Create(path string, v semver.Version) (*File, error) {
	var b []byte
	switch detectFormat(path) {
	case FormatJSON:
		b = []byte(fmt.Sprintf("{\n  \"version\": %q\n}\n", v.String()))
	case FormatYAML:
		b = []byte(fmt.Sprintf("version: %v\n", v))
	default:
		b = []byte(fmt.Sprintf("%v\n", v))
	}

	fp, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %v", ErrExist, path)
		}
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}

	if _, err := fp.Write(b); err != nil {
		fp.Close()
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := fp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return Load(path)
}

// Path returns the path of the manifest.
func (f *File) Path() string { return f.path }

// Format returns the on-disk layout of the manifest.
func (f *File) Format() Format { return f.format }

// Version returns the version stored in the manifest.
func (f *File) Version() semver.Version { return f.version }

// Save writes the manifest with its version replaced by v. All bytes
// surrounding the version literal are left untouched.
func (f *File) Save(v semver.Version) error {
	s := v.String()
	if f.prefixed {
		s = "v" + s
	}

	b := make([]byte, 0, len(f.raw)+len(s))
	b = append(b, f.raw[:f.begin]...)
	b = append(b, s...)
	b = append(b, f.raw[f.end:]...)

	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	f.raw = b
	f.end = f.begin + len(s)
	f.version = v

	return nil
}

// locate finds and parses the version literal within the manifest.
func (f *File) locate() error {
	switch f.format {
	case FormatJSON:
		return f.locateJSON()
	case FormatYAML:
		return f.locateYAML()
	}
	return f.locateRaw()
}

// setVersion records the version literal spanning raw[begin:end].
func (f *File) setVersion(begin, end int) error {
	lit := string(f.raw[begin:end])

	trimmed := strings.TrimPrefix(lit, "v")
	v, err := semver.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("failed to parse version %q: %w", lit, err)
	}

	f.version = v
	f.prefixed = trimmed != lit
	f.begin = begin
	f.end = end

	return nil
}

func (f *File) locateRaw() error {
	s := string(f.raw)

	lit := strings.TrimSpace(s)
	if lit == "" {
		return ErrNoVersion
	}

	begin := strings.Index(s, lit)
	return f.setVersion(begin, begin+len(lit))
}

// jsonVersionRE matches a top-level "version" field. The indent bound keeps
// it from landing on version fields of nested objects.
var jsonVersionRE = regexp.MustCompile(`(?m)^[ \t]{0,4}"version"\s*:\s*"([^"]*)"`)

func (f *File) locateJSON() error {
	var doc struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(f.raw, &doc); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if doc.Version == "" {
		return ErrNoVersion
	}

	loc := jsonVersionRE.FindSubmatchIndex(f.raw)
	if loc == nil || string(f.raw[loc[2]:loc[3]]) != doc.Version {
		return fmt.Errorf("%w: %v", ErrVersionNotLocated, f.path)
	}

	return f.setVersion(loc[2], loc[3])
}

// yamlVersionRE matches an unindented version key, quoted or not.
var yamlVersionRE = regexp.MustCompile(`(?m)^version\s*:\s*["']?([^\s"'#]+)`)

func (f *File) locateYAML() error {
	var doc struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(f.raw, &doc); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if doc.Version == "" {
		return ErrNoVersion
	}

	loc := yamlVersionRE.FindSubmatchIndex(f.raw)
	if loc == nil || string(f.raw[loc[2]:loc[3]]) != doc.Version {
		return fmt.Errorf("%w: %v", ErrVersionNotLocated, f.path)
	}

	return f.setVersion(loc[2], loc[3])
}
