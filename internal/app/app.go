// Package app wires configuration, the parser, and the analyzer together.
// It resolves path arguments and runs one analysis per invocation, or a
// sequence of fresh analyses in watch mode.
package app

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/corey/funclen/internal/config"
	"github.com/corey/funclen/internal/domain/analyzer"
	"github.com/corey/funclen/internal/ports"
)

// Config holds everything needed to run the analyzer.
type Config struct {
	Settings   config.Config
	IgnoreTest bool
	Parser     ports.Parser
	Out        io.Writer // diagnostics; defaults to os.Stdout
	Logger     zerolog.Logger
}

// App runs analyses over files and directories.
type App struct {
	cfg Config
}

// New validates the configuration and returns an App.
func New(cfg Config) (*App, error) {
	if cfg.Parser == nil {
		return nil, errors.New("app: parser is required")
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &App{cfg: cfg}, nil
}

// newAnalyzer returns a fresh analyzer with no visited declarations.
func (a *App) newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(a.cfg.Settings, a.cfg.Parser,
		analyzer.WithOutput(a.cfg.Out),
		analyzer.WithLogger(a.cfg.Logger),
	)
}

// Run analyzes each path in order. Files are analyzed directly, directories
// recursively; anything else is skipped. It reports whether any declaration
// reached the error limit.
func (a *App) Run(paths []string) bool {
	an := a.newAnalyzer()
	a.analyzePaths(an, paths)
	a.cfg.Logger.Debug().
		Int("findings", len(an.Findings())).
		Bool("too_long", an.TooLongFunctions()).
		Msg("analysis complete")
	return an.TooLongFunctions()
}

func (a *App) analyzePaths(an *analyzer.Analyzer, paths []string) {
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			a.cfg.Logger.Debug().Err(err).Str("path", p).Msg("skipping path")
		case info.Mode().IsRegular():
			an.AnalyzeFile(p, a.cfg.IgnoreTest)
		case info.IsDir():
			an.AnalyzeDirectory(p, a.cfg.IgnoreTest)
		default:
			a.cfg.Logger.Debug().Str("path", p).Msg("skipping non-regular path")
		}
	}
}
