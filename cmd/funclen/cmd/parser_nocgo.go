//go:build !cgo

package cmd

import (
	"errors"

	"github.com/corey/funclen/internal/ports"
)

// newParser fails in pure Go builds: the tree-sitter grammars need CGo.
func newParser() (ports.Parser, error) {
	return nil, errors.New("built without CGo: no parser available (rebuild with CGO_ENABLED=1)")
}
