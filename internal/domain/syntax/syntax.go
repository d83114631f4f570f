// Package syntax is the parser-independent declaration tree the analyzer walks.
// Adapters translate a concrete parse tree into these nodes; everything that is
// neither a function nor a class collapses into Other.
package syntax

// Node is one of *FunctionDecl, *ClassDecl or *Other.
type Node interface {
	// Children returns the nested nodes in source order.
	Children() []Node
	sealed()
}

// FunctionDecl is a function or method definition. Lines are 1-based and inclusive.
type FunctionDecl struct {
	Name      string
	StartLine int
	EndLine   int
	Body      []Node
}

// ClassDecl is a class definition. Body holds its direct members.
type ClassDecl struct {
	Name string
	Body []Node
}

// Other is any statement or expression that may contain declarations.
type Other struct {
	Kind  string
	Nodes []Node
}

// File is the root of a parsed source file.
type File struct {
	Path string
	Body []Node
}

func (f *FunctionDecl) Children() []Node { return f.Body }
func (c *ClassDecl) Children() []Node    { return c.Body }
func (o *Other) Children() []Node        { return o.Nodes }

func (*FunctionDecl) sealed() {}
func (*ClassDecl) sealed()    {}
func (*Other) sealed()        {}

// Lines returns the inclusive line span of the declaration.
func (f *FunctionDecl) Lines() int {
	return f.EndLine - f.StartLine + 1
}

// Walk visits every node under f breadth-first, calling fn in visit order.
func (f *File) Walk(fn func(Node)) {
	queue := append([]Node(nil), f.Body...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		fn(n)
		queue = append(queue, n.Children()...)
	}
}
