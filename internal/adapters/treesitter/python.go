package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/funclen/internal/domain/syntax"
)

// convertPython maps a tree-sitter-python module into declaration nodes.
// Subtrees without any function or class definition are dropped.
func convertPython(root *tree_sitter.Node, source []byte) []syntax.Node {
	return convertPythonChildren(root, source)
}

func convertPythonChildren(n *tree_sitter.Node, source []byte) []syntax.Node {
	var nodes []syntax.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		nodes = append(nodes, convertPythonNode(child, source)...)
	}
	return nodes
}

func convertPythonNode(n *tree_sitter.Node, source []byte) []syntax.Node {
	switch n.Kind() {
	case "function_definition":
		return []syntax.Node{convertPythonFunction(n, source)}
	case "class_definition":
		return []syntax.Node{convertPythonClass(n, source)}
	case "decorated_definition":
		// The span of a decorated definition starts at its def/class line.
		if def := n.ChildByFieldName("definition"); def != nil {
			return convertPythonNode(def, source)
		}
		return nil
	case "block":
		// Statement lists belong directly to their owner.
		return convertPythonChildren(n, source)
	}

	children := convertPythonChildren(n, source)
	if len(children) == 0 {
		return nil
	}
	return []syntax.Node{&syntax.Other{Kind: n.Kind(), Nodes: children}}
}

func convertPythonFunction(n *tree_sitter.Node, source []byte) *syntax.FunctionDecl {
	fn := &syntax.FunctionDecl{
		Name:      fieldText(n, "name", source),
		StartLine: startLine(n),
		EndLine:   lastStatementLine(n),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Body = convertPythonChildren(body, source)
	}
	return fn
}

func convertPythonClass(n *tree_sitter.Node, source []byte) *syntax.ClassDecl {
	cls := &syntax.ClassDecl{Name: fieldText(n, "name", source)}
	if body := n.ChildByFieldName("body"); body != nil {
		cls.Body = convertPythonChildren(body, source)
	}
	return cls
}

// fieldText returns the text of a named field, or "" when absent.
func fieldText(n *tree_sitter.Node, field string, source []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return nodeText(c, source)
}

// pythonCompound lists the statements whose span ends with their last
// nested statement. Comments trailing the final statement of any of these
// belong to no statement.
var pythonCompound = map[string]bool{
	"module":               true,
	"block":                true,
	"function_definition":  true,
	"class_definition":     true,
	"decorated_definition": true,
	"if_statement":         true,
	"elif_clause":          true,
	"else_clause":          true,
	"for_statement":        true,
	"while_statement":      true,
	"try_statement":        true,
	"except_clause":        true,
	"except_group_clause":  true,
	"finally_clause":       true,
	"with_statement":       true,
	"match_statement":      true,
	"case_clause":          true,
}

// lastStatementLine returns the last line of the final statement under n,
// skipping trailing comments at every nesting level.
func lastStatementLine(n *tree_sitter.Node) int {
	for pythonCompound[n.Kind()] {
		last := lastNonComment(n)
		if last == nil {
			break
		}
		n = last
	}
	return endLine(n)
}

// lastNonComment returns the last named child that is not a comment.
func lastNonComment(n *tree_sitter.Node) *tree_sitter.Node {
	for i := n.NamedChildCount(); i > 0; i-- {
		c := n.NamedChild(i - 1)
		if c != nil && c.Kind() != "comment" {
			return c
		}
	}
	return nil
}
