// Copyright (c) 2023, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package config reads per-project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file within a project.
const FileName = ".vbump.yml"

// Config represents the .vbump.yml configuration file.
type Config struct {
	Manifest string       `yaml:"manifest,omitempty"`
	Tag      TagConfig    `yaml:"tag,omitempty"`
	Commit   CommitConfig `yaml:"commit,omitempty"`
	Ignore   []string     `yaml:"ignore,omitempty"`
}

// TagConfig configures the release tag.
type TagConfig struct {
	Prefix  string `yaml:"prefix,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// CommitConfig configures the release commit.
type CommitConfig struct {
	Message string `yaml:"message,omitempty"`
	SignKey string `yaml:"sign-key,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Manifest: ".version",
		Tag:      TagConfig{Prefix: "v"},
		Commit:   CommitConfig{Message: "{v}"},
	}
}

var (
	ErrInvalidManifest = errors.New("manifest path must not be empty")
	ErrInvalidTemplate = errors.New("message template must contain {v}")
	ErrInvalidIgnore   = errors.New("invalid ignore pattern")
)

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(b)
}

// LoadFromDir reads the configuration of the project at dir. If the project
// has no configuration file, the default configuration is returned.
func LoadFromDir(dir string) (*Config, error) {
	c, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Parse parses configuration content b. Values absent from b take their
// default values.
func Parse(b []byte) (*Config, error) {
	c := Default()

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that the config is usable. Callers that modify a config
// after loading it should re-validate it.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return ErrInvalidManifest
	}

	if !strings.Contains(c.Commit.Message, "{v}") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, c.Commit.Message)
	}

	if c.Tag.Message != "" && !strings.Contains(c.Tag.Message, "{v}") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, c.Tag.Message)
	}

	for _, pattern := range c.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIgnore, pattern, err)
		}
	}

	return nil
}
