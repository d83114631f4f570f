//go:build cgo

package cmd

import (
	"github.com/corey/funclen/internal/adapters/treesitter"
	"github.com/corey/funclen/internal/ports"
)

// newParser returns the tree-sitter parser when CGo is available.
func newParser() (ports.Parser, error) {
	return treesitter.NewParser(), nil
}
