/*
File   : lox-go/config/config.go
Package: config

Package config loads the two user-facing toggles SPEC_FULL.md §2 adds on
top of spec.md's CLI: whether diagnostics are colored, and whether the
resolver emits scope-close trace lines. It follows the optional-config-file
pattern of hashicorp/nomad's loaders rather than a flag-heavy CLI (the
teacher has no config file layer) — look for a project-local file first,
then a home-directory one, and
treat the absence of either as "use the defaults", never as an error.
*/
package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	projectFile = "loxgo.yaml"
	homeFile    = ".loxgo.yaml"
)

// Config holds the two toggles this dialect's CLI supports beyond the
// required `prog <path>` form.
type Config struct {
	// Color selects whether diagnostics are colored. Unset (nil) means
	// "auto-detect from the output stream" — see diagnostics.New.
	Color *bool `yaml:"color"`

	// TraceResolver turns on the resolver's scope-close trace lines.
	TraceResolver bool `yaml:"trace_resolver"`
}

// Load looks for loxgo.yaml in the current directory, then .loxgo.yaml in
// the user's home directory, and returns the first one found, parsed. No
// file found is not an error: it returns the zero Config (auto color,
// tracing off).
func Load() (Config, error) {
	if cfg, ok, err := loadFrom(projectFile); err != nil {
		return Config{}, err
	} else if ok {
		return cfg, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		// A user with no resolvable home directory gets defaults rather
		// than a hard failure — this toggle set is a convenience, not a
		// required input.
		return Config{}, nil
	}
	if cfg, ok, err := loadFrom(filepath.Join(home, homeFile)); err != nil {
		return Config{}, err
	} else if ok {
		return cfg, nil
	}

	return Config{}, nil
}

func loadFrom(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}
