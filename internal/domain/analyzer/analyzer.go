package analyzer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/corey/funclen/internal/config"
	"github.com/corey/funclen/internal/domain/syntax"
	"github.com/corey/funclen/internal/ports"
)

// TestFilePrefix marks files skipped when test files are ignored.
const TestFilePrefix = "test_"

// Analyzer checks declarations in one run. It is not safe for concurrent use;
// construct a fresh Analyzer per run.
type Analyzer struct {
	cfg         config.Config
	parser      ports.Parser
	out         io.Writer
	log         zerolog.Logger
	ignoreFiles map[string]bool

	visited  map[declKey]struct{}
	findings []Finding
	tooLong  bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithOutput sets where diagnostics are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Analyzer) { a.out = w }
}

// WithLogger sets the logger for skipped files and read failures.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// New creates an Analyzer with the given settings and parser.
func New(cfg config.Config, parser ports.Parser, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:         cfg,
		parser:      parser,
		out:         os.Stdout,
		log:         zerolog.Nop(),
		ignoreFiles: make(map[string]bool, len(cfg.IgnoreFiles)),
		visited:     make(map[declKey]struct{}),
	}
	for _, name := range cfg.IgnoreFiles {
		a.ignoreFiles[name] = true
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TooLongFunctions reports whether any declaration reached the error limit.
// Once true it stays true for the life of the Analyzer.
func (a *Analyzer) TooLongFunctions() bool {
	return a.tooLong
}

// Findings returns the flagged declarations in traversal order.
func (a *Analyzer) Findings() []Finding {
	return a.findings
}

// VisitFunction checks one declaration. className is empty for free functions.
// A declaration already seen in this run is ignored.
func (a *Analyzer) VisitFunction(fn *syntax.FunctionDecl, className, filePath string) {
	key := declKey{file: filePath, name: fn.Name, startLine: fn.StartLine, endLine: fn.EndLine}
	if _, seen := a.visited[key]; seen {
		return
	}
	a.visited[key] = struct{}{}

	lines := fn.Lines()
	sev := Classify(lines, a.cfg.WarningLineLimit, a.cfg.ErrorLineLimit)
	if sev == SevNone {
		return
	}
	if sev == SevError {
		a.tooLong = true
	}

	f := Finding{
		File:      filePath,
		Name:      fn.Name,
		Kind:      KindFunction,
		Severity:  sev,
		Lines:     lines,
		StartLine: fn.StartLine,
		EndLine:   fn.EndLine,
	}
	if className != "" {
		f.Name = className + "." + fn.Name
		f.Kind = KindMethod
	}
	a.findings = append(a.findings, f)

	if a.cfg.EnableOutput {
		fmt.Fprintln(a.out, FormatFinding(f))
	}
}

// FormatFinding renders the diagnostic line for a finding.
func FormatFinding(f Finding) string {
	return fmt.Sprintf("(%s) The %s '%s' in file '%s' has %d lines.",
		f.Severity, f.Kind, f.Name, f.File, f.Lines)
}

// AnalyzeFile parses one file and checks every function and method in it.
// With ignoreTest set, test files and configured ignore files are skipped.
// Syntax errors are reported and the file is skipped.
func (a *Analyzer) AnalyzeFile(filePath string, ignoreTest bool) {
	base := filepath.Base(filePath)
	if ignoreTest && (strings.HasPrefix(base, TestFilePrefix) || a.ignoreFiles[base]) {
		a.log.Debug().Str("file", filePath).Msg("skipping test file")
		return
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		a.log.Warn().Err(err).Str("file", filePath).Msg("cannot read file")
		return
	}

	file, err := a.parser.Parse(filePath, source)
	if err != nil {
		var perr *ports.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(a.out, "The file '%s' has errors %s.\n", filePath, perr)
			return
		}
		a.log.Warn().Err(err).Str("file", filePath).Msg("cannot parse file")
		return
	}

	a.analyzeTree(file)
}

// analyzeTree walks every node. Direct members of a class are visited as
// methods when the class is reached, which happens before the walk gets to
// the members themselves; the dedup set keeps them from being counted again
// as free functions.
func (a *Analyzer) analyzeTree(file *syntax.File) {
	file.Walk(func(n syntax.Node) {
		switch d := n.(type) {
		case *syntax.ClassDecl:
			for _, member := range d.Body {
				if fn, ok := member.(*syntax.FunctionDecl); ok {
					a.VisitFunction(fn, d.Name, file.Path)
				}
			}
		case *syntax.FunctionDecl:
			a.VisitFunction(d, "", file.Path)
		}
	})
}

// AnalyzeDirectory walks root depth-first and analyzes every source file.
// A directory whose path contains an ignored directory name anywhere (substring
// match, so ".git" also excludes "my.github") is skipped with its subtree.
func (a *Analyzer) AnalyzeDirectory(root string, ignoreTest bool) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			a.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			if a.ignoredDir(path) {
				a.log.Debug().Str("dir", path).Msg("skipping ignored directory")
				return filepath.SkipDir
			}
			return nil
		}
		if a.parser.SupportsExtension(filepath.Ext(d.Name())) {
			a.AnalyzeFile(path, ignoreTest)
		}
		return nil
	})
}

// ignoredDir reports whether dir falls under an ignored directory name.
func (a *Analyzer) ignoredDir(dir string) bool {
	for _, name := range a.cfg.IgnoreDirectories {
		if name != "" && strings.Contains(dir, name) {
			return true
		}
	}
	return false
}

// IgnoredPath reports whether a file path lies in an ignored directory.
func (a *Analyzer) IgnoredPath(path string) bool {
	return a.ignoredDir(filepath.Dir(path))
}
