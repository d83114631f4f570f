package treesitter

// This file registers the compiled-in grammars and the file extensions they
// handle. The grammar is linked through CGo by go-tree-sitter.

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltinLanguages adds all compiled-in grammars to the parser.
func (p *Parser) registerBuiltinLanguages() {
	p.addLang("python", langPtr(ts_python.Language()))
}

// registerExtensions maps file extensions to the registered languages.
func (p *Parser) registerExtensions() {
	p.addExt("python", ".py")
}
