// Package treesitter implements source code parsing using tree-sitter grammars.
// It converts a concrete parse tree into the syntax.File declaration tree
// consumed by the function length analyzer.
package treesitter

import (
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/funclen/internal/domain/syntax"
	"github.com/corey/funclen/internal/ports"
)

// Parser builds declaration trees from source files using tree-sitter grammars.
type Parser struct {
	languages map[string]*tree_sitter.Language // lang name -> language
	extToLang map[string]string                // extension -> lang name
	fallback  string                           // language for unmapped extensions
}

// NewParser creates a parser with all built-in grammars registered.
func NewParser() *Parser {
	p := &Parser{
		languages: make(map[string]*tree_sitter.Language),
		extToLang: make(map[string]string),
	}
	p.registerBuiltinLanguages()
	p.registerExtensions()
	p.fallback = "python"
	return p
}

// addLang registers a language by name.
func (p *Parser) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		p.languages[name] = lang
	}
}

// addExt maps file extensions to a language name.
func (p *Parser) addExt(lang string, exts ...string) {
	for _, ext := range exts {
		p.extToLang[ext] = lang
	}
}

// Parse builds the declaration tree for a file. Source with syntax errors
// yields a *ports.ParseError pointing at the first error node.
func (p *Parser) Parse(filePath string, source []byte) (*syntax.File, error) {
	tree, lang, err := p.ParseToTree(filePath, source)
	if err != nil {
		return nil, err
	}
	file := &syntax.File{Path: filePath}
	if tree == nil {
		return file, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if bad := firstInvalid(root); bad != nil {
		return nil, &ports.ParseError{
			File: filepath.Base(filePath),
			Line: startLine(bad),
			Msg:  invalidMessage(bad),
		}
	}

	switch lang {
	case "python":
		file.Body = convertPython(root, source)
	}
	return file, nil
}

// ParseToTree parses source into a raw tree-sitter tree. The caller must Close
// the returned tree. Empty source yields a nil tree and no error.
func (p *Parser) ParseToTree(filePath string, source []byte) (*tree_sitter.Tree, string, error) {
	langName := p.detectLanguage(filePath)
	if langName == "" {
		return nil, "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}
	lang, ok := p.languages[langName]
	if !ok {
		return nil, "", fmt.Errorf("no grammar for %s", langName)
	}
	if len(source) == 0 {
		return nil, langName, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, "", fmt.Errorf("set language %s: %w", langName, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, "", fmt.Errorf("parse %s: no tree produced", filePath)
	}
	return tree, langName, nil
}

// SupportsExtension returns true if the parser recognizes this file extension.
// The match is case-sensitive: "X.PY" is not picked up by directory walks.
func (p *Parser) SupportsExtension(ext string) bool {
	_, ok := p.extToLang[ext]
	return ok
}

// detectLanguage determines the language from the file path. Files named
// explicitly without a known extension (scripts, entry points) use the fallback.
func (p *Parser) detectLanguage(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if lang, ok := p.extToLang[ext]; ok {
		return lang
	}
	return p.fallback
}

// legacyStatements are Python 2 statements the grammar still accepts but
// Python 3 rejects.
var legacyStatements = map[string]string{
	"print_statement": "print",
	"exec_statement":  "exec",
}

// firstInvalid returns the first node in document order that makes the file
// unparseable: an ERROR or MISSING node, or a Python 2 statement.
func firstInvalid(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if _, ok := legacyStatements[n.Kind()]; ok {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if bad := firstInvalid(c); bad != nil {
			return bad
		}
	}
	return nil
}

// invalidMessage describes why n makes the file unparseable.
func invalidMessage(n *tree_sitter.Node) string {
	if kw, ok := legacyStatements[n.Kind()]; ok {
		return fmt.Sprintf("Missing parentheses in call to '%s'. Did you mean %s(...)?", kw, kw)
	}
	return "invalid syntax"
}

// startLine returns the 1-based line a node starts on.
func startLine(n *tree_sitter.Node) int {
	return int(n.StartPosition().Row + 1)
}

// endLine returns the 1-based last line a node occupies. A node ending at
// column 0 stops before that row.
func endLine(n *tree_sitter.Node) int {
	end := n.EndPosition()
	if end.Column == 0 && end.Row > n.StartPosition().Row {
		return int(end.Row)
	}
	return int(end.Row + 1)
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
