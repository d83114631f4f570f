// Package config resolves analyzer settings from built-in defaults, the
// [tool.FunctionLengthAnalyzer] section of a pyproject.toml, and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the project file read when no explicit path is given.
const DefaultFile = "pyproject.toml"

// Section is the table under [tool] holding the analyzer settings.
const Section = "FunctionLengthAnalyzer"

// ErrNoSection is returned by Load when the file has no analyzer section.
var ErrNoSection = errors.New("no [tool." + Section + "] section")

// Config holds the analyzer settings.
// WarningLineLimit <= ErrorLineLimit is expected but not enforced.
type Config struct {
	ErrorLineLimit    int      `toml:"error_line_limit"`
	WarningLineLimit  int      `toml:"warning_line_limit"`
	EnableOutput      bool     `toml:"enable_output"`
	IgnoreDirectories []string `toml:"ignore_directories"`
	IgnoreFiles       []string `toml:"ignore_files"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ErrorLineLimit:    60,
		WarningLineLimit:  50,
		EnableOutput:      true,
		IgnoreDirectories: []string{".git", ".venv", "node_modules"},
		IgnoreFiles:       []string{"conftest.py", "fixtures.py"},
	}
}

// section mirrors Config with optional fields so absent keys can fall back
// to defaults one by one.
type section struct {
	ErrorLineLimit    *int      `toml:"error_line_limit"`
	WarningLineLimit  *int      `toml:"warning_line_limit"`
	EnableOutput      *bool     `toml:"enable_output"`
	IgnoreDirectories *[]string `toml:"ignore_directories"`
	IgnoreFiles       *[]string `toml:"ignore_files"`
}

type pyproject struct {
	Tool struct {
		Analyzer *section `toml:"FunctionLengthAnalyzer"`
	} `toml:"tool"`
}

// Load reads settings from a pyproject.toml file. Keys missing from the
// section take their default value. When the file is missing, unreadable,
// malformed, or lacks the section, Load returns Default() together with the
// reason; callers that only want the fallback behaviour can ignore the error.
func Load(path string) (Config, error) {
	var doc pyproject
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return Default(), fmt.Errorf("load %s: %w", path, err)
	}
	if doc.Tool.Analyzer == nil {
		return Default(), fmt.Errorf("load %s: %w", path, ErrNoSection)
	}
	return doc.Tool.Analyzer.merge(Default()), nil
}

func (s *section) merge(cfg Config) Config {
	if s.ErrorLineLimit != nil {
		cfg.ErrorLineLimit = *s.ErrorLineLimit
	}
	if s.WarningLineLimit != nil {
		cfg.WarningLineLimit = *s.WarningLineLimit
	}
	if s.EnableOutput != nil {
		cfg.EnableOutput = *s.EnableOutput
	}
	if s.IgnoreDirectories != nil {
		cfg.IgnoreDirectories = slices.Clone(*s.IgnoreDirectories)
	}
	if s.IgnoreFiles != nil {
		cfg.IgnoreFiles = slices.Clone(*s.IgnoreFiles)
	}
	return cfg
}

// Overrides are explicit settings from the command line. Nil fields keep the
// loaded value.
type Overrides struct {
	ErrorLineLimit   *int
	WarningLineLimit *int
	EnableOutput     *bool
}

// Apply returns a copy of c with the non-nil overrides applied.
func (c Config) Apply(o Overrides) Config {
	if o.ErrorLineLimit != nil {
		c.ErrorLineLimit = *o.ErrorLineLimit
	}
	if o.WarningLineLimit != nil {
		c.WarningLineLimit = *o.WarningLineLimit
	}
	if o.EnableOutput != nil {
		c.EnableOutput = *o.EnableOutput
	}
	c.IgnoreDirectories = slices.Clone(c.IgnoreDirectories)
	c.IgnoreFiles = slices.Clone(c.IgnoreFiles)
	return c
}
