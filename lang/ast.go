package lang

import (
	"iter"
	"strconv"
	"strings"
)

// ShellCommand is the command given to statements introduced by a shell
// bridge or a comment at the start of a line.
const ShellCommand = "shell~"

// File is the root of a parsed PlexCode source.
type File struct {
	Statements []*Statement
	Pos        Position
}

// Statement is one command with its parameters and nested children.
type Statement struct {
	Command  string
	Params   []*Param
	Children []*Statement
	// Bridge holds the verbatim remainder of a line handed off by a shell
	// bridge or comment. HasBridge distinguishes an empty capture from none.
	Bridge    string
	HasBridge bool
	// Indent is the number of descend markers that introduced the statement,
	// counted from the level the parser was asked to parse at.
	Indent int
	Pos    Position
}

// IsShell reports whether s is a shell passthrough statement.
func (s *Statement) IsShell() bool { return s.Command == ShellCommand }

// Param is a statement parameter. Key is empty for positional parameters.
type Param struct {
	Key   string
	Value Value
	Pos   Position
}

// Value is a parameter value: one of [*String], [*Number], [*Reference],
// or [*List].
type Value interface {
	// Position returns where the value starts in the source.
	Position() Position
	// String returns the value in PlexCode source syntax.
	String() string

	value()
}

// String is a literal text value. It is produced by quoted strings,
// identifiers, and keywords used as values.
type String struct {
	Text   string
	Quoted bool
	Pos    Position
}

// Number is a numeric literal. Text keeps the source spelling.
type Number struct {
	Value float64
	Text  string
	Pos   Position
}

// Reference is an access path such as "@.attributes". The path keeps its
// leading "@".
type Reference struct {
	Path string
	Pos  Position
}

// List is a bracketed sequence of values. Lists never nest.
type List struct {
	Items []Value
	Pos   Position
}

func (*String) value()    {}
func (*Number) value()    {}
func (*Reference) value() {}
func (*List) value()      {}

func (v *String) Position() Position    { return v.Pos }
func (v *Number) Position() Position    { return v.Pos }
func (v *Reference) Position() Position { return v.Pos }
func (v *List) Position() Position      { return v.Pos }

func (v *String) String() string {
	if v.Quoted {
		return strconv.Quote(v.Text)
	}

	return v.Text
}

func (v *Number) String() string {
	if v.Text != "" {
		return v.Text
	}

	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

func (v *Reference) String() string { return v.Path }

func (v *List) String() string {
	items := make([]string, len(v.Items))
	for i, item := range v.Items {
		items[i] = item.String()
	}

	return "[" + strings.Join(items, ", ") + "]"
}

// All returns an iterator over every statement in f in pre-order: each
// statement is yielded before its children, siblings in source order.
func (f *File) All() iter.Seq[*Statement] {
	return func(yield func(*Statement) bool) {
		if f == nil {
			return
		}

		walk(f.Statements, yield)
	}
}

// All returns an iterator over s and all of its descendants in pre-order.
func (s *Statement) All() iter.Seq[*Statement] {
	return func(yield func(*Statement) bool) {
		walk([]*Statement{s}, yield)
	}
}

func walk(stmts []*Statement, yield func(*Statement) bool) bool {
	for _, s := range stmts {
		if !yield(s) || !walk(s.Children, yield) {
			return false
		}
	}

	return true
}

// References returns every reference in s, including those inside lists.
func (s *Statement) References() []*Reference {
	var refs []*Reference

	for _, p := range s.Params {
		switch v := p.Value.(type) {
		case *Reference:
			refs = append(refs, v)

		case *List:
			for _, item := range v.Items {
				if ref, ok := item.(*Reference); ok {
					refs = append(refs, ref)
				}
			}
		}
	}

	return refs
}
