package ports

import (
	"fmt"

	"github.com/corey/funclen/internal/domain/syntax"
)

// Parser turns source text into the declaration tree walked by the analyzer.
// The concrete implementation (tree-sitter) lives in internal/adapters/treesitter.
type Parser interface {
	// Parse builds the declaration tree for one file. Malformed source is
	// reported as a *ParseError; any other error means the parser itself failed.
	Parse(path string, source []byte) (*syntax.File, error)

	// SupportsExtension returns true if the parser can handle files with this
	// extension (e.g., ".py"). Extension includes the leading dot.
	SupportsExtension(ext string) bool
}

// ParseError describes the first syntax error found in a file.
type ParseError struct {
	File string // base name of the file
	Line int    // 1-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (%s, line %d)", e.Msg, e.File, e.Line)
}
