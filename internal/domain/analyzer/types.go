// Package analyzer flags function and method declarations whose line span
// exceeds the configured warning and error limits.
package analyzer

// Severity is the tier a too-long declaration falls into.
type Severity int

const (
	SevNone    Severity = 0
	SevWarning Severity = 1
	SevError   Severity = 2
)

// String returns the label used in diagnostics.
func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "none"
	}
}

// Classify returns the tier for a declaration spanning lines. A span equal to
// the error limit is an error; a span equal to the warning limit is fine.
func Classify(lines, warningLimit, errorLimit int) Severity {
	switch {
	case lines <= warningLimit:
		return SevNone
	case lines >= errorLimit:
		return SevError
	default:
		return SevWarning
	}
}

// DeclKind distinguishes free functions from methods.
type DeclKind string

const (
	KindFunction DeclKind = "function"
	KindMethod   DeclKind = "method"
)

// Finding is one declaration over the warning limit.
type Finding struct {
	File      string
	Name      string // qualified: Class.method for methods
	Kind      DeclKind
	Severity  Severity
	Lines     int
	StartLine int
	EndLine   int
}

// declKey identifies a declaration within one analyzer run.
type declKey struct {
	file      string
	name      string
	startLine int
	endLine   int
}
