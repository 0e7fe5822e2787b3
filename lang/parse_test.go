package lang

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func parse(t *testing.T, src string, opts ...Option) *File {
	t.Helper()

	file, errs := Parse(Tokenize(src), opts...)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) errors: %v", src, errs)
	}

	if file == nil {
		t.Fatalf("Parse(%q) returned nil file", src)
	}

	return file
}

// ignorePos compares trees by structure alone.
var ignorePos = cmpopts.IgnoreTypes(Position{})

func TestParse_SimpleCommand(t *testing.T) {
	file := parse(t, "call~ test")

	want := []*Statement{{
		Command: "call~",
		Params:  []*Param{{Value: &String{Text: "test"}}},
	}}

	if diff := cmp.Diff(want, file.Statements, ignorePos); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "   "} {
		file, errs := Parse(Tokenize(src))
		if file == nil || len(file.Statements) != 0 || len(errs) != 0 {
			t.Errorf("Parse(%q) = %v, %v; want empty file and no errors", src, file, errs)
		}
	}
}

func TestParse_Params(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []*Param
	}{
		{
			name:  "list",
			input: "Sniff~ [ALL]",
			want:  []*Param{{Value: &List{Items: []Value{&String{Text: "ALL"}}}}},
		},
		{
			name:  "list items",
			input: `Fetch~!! [sensors, "a b", 2, @x.y]`,
			want: []*Param{{Value: &List{Items: []Value{
				&String{Text: "sensors"},
				&String{Text: "a b", Quoted: true},
				&Number{Value: 2, Text: "2"},
				&Reference{Path: "@x.y"},
			}}}},
		},
		{
			name:  "nested list dropped",
			input: "SEND~!! [a, [b], c] payload",
			want: []*Param{
				{Value: &List{Items: []Value{&String{Text: "a"}, &String{Text: "c"}}}},
				{Value: &String{Text: "payload"}},
			},
		},
		{
			name:  "deeply nested list dropped",
			input: "call~ [a, [b, [c]], d]",
			want: []*Param{
				{Value: &List{Items: []Value{&String{Text: "a"}, &String{Text: "d"}}}},
			},
		},
		{
			name:  "reference",
			input: "Store~ @.attributes",
			want:  []*Param{{Value: &Reference{Path: "@.attributes"}}},
		},
		{
			name:  "reference with keywords stops at pipe",
			input: "Store~ @session.data | x",
			want: []*Param{
				{Value: &Reference{Path: "@session.data"}},
				{Value: &String{Text: "x"}},
			},
		},
		{
			name:  "whitespace ends a reference",
			input: "Store~ @x y",
			want: []*Param{
				{Value: &Reference{Path: "@x"}},
				{Value: &String{Text: "y"}},
			},
		},
		{
			name:  "named values",
			input: `SEND~!! target: dev1 data: "ping" rows: 3`,
			want: []*Param{
				{Key: "target", Value: &String{Text: "dev1"}},
				{Key: "data", Value: &String{Text: "ping", Quoted: true}},
				{Key: "rows", Value: &Number{Value: 3, Text: "3"}},
			},
		},
		{
			name:  "named value missing",
			input: "Feed~ mode:",
			want:  []*Param{{Key: "mode", Value: &String{}}},
		},
		{
			name:  "pipes separate",
			input: "ASK~!! | SENSOR_ACCESS ||| ALL |!!| 1.5",
			want: []*Param{
				{Value: &String{Text: "SENSOR_ACCESS"}},
				{Value: &String{Text: "ALL"}},
				{Value: &Number{Value: 1.5, Text: "1.5"}},
			},
		},
		{
			name:  "keyword as literal",
			input: "Pair~ | Device~!!",
			want:  []*Param{{Value: &String{Text: "Device~!!"}}},
		},
		{
			name:  "numbers read leading run",
			input: "Rows~ 1.2.3",
			want:  []*Param{{Value: &Number{Value: 1.2, Text: "1.2.3"}}},
		},
		{
			name:  "unrecognized tokens are skipped",
			input: "call~ ( x ) = {}",
			want:  []*Param{{Value: &String{Text: "x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parse(t, tt.input)
			if len(file.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(file.Statements))
			}

			if diff := cmp.Diff(tt.want, file.Statements[0].Params, ignorePos); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Children(t *testing.T) {
	file := parse(t, "Panel~!!\n╰──➤ ID~ \"TestPanel\"\n╰──➤ Feed~ LIVE")

	if len(file.Statements) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(file.Statements))
	}

	panel := file.Statements[0]
	if panel.Command != "Panel~!!" {
		t.Errorf("command = %q, want Panel~!!", panel.Command)
	}

	var got []string
	for _, c := range panel.Children {
		got = append(got, c.Command)

		if c.Indent != panel.Indent+1 {
			t.Errorf("%s indent = %d, want %d", c.Command, c.Indent, panel.Indent+1)
		}
	}

	if diff := cmp.Diff([]string{"ID~", "Feed~"}, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ChildCountMatchesMarkers(t *testing.T) {
	for n := range 6 {
		var sb strings.Builder

		sb.WriteString("SimCore~!!")

		for range n {
			sb.WriteString("\n╰──➤ Inject~ sensor")
		}

		file := parse(t, sb.String())
		if got := len(file.Statements[0].Children); got != n {
			t.Errorf("%d markers: got %d children", n, got)
		}
	}
}

func TestParse_NestedTree(t *testing.T) {
	src := strings.Join([]string{
		"Build~!! UI",
		"╰──➤ Panels~",
		"╰──➤ ╰──➤ Grid~",
		"╰──➤ ╰──➤ ╰──➤ Rows~ 3",
		"╰──➤ ╰──➤ Total~ 4",
		"╰──➤ Log~ ALWAYS",
		"show~ done",
	}, "\n")

	file := parse(t, src)

	type node struct {
		Command  string
		Indent   int
		Children []node
	}

	var shape func([]*Statement) []node

	shape = func(stmts []*Statement) []node {
		var out []node
		for _, s := range stmts {
			out = append(out, node{s.Command, s.Indent, shape(s.Children)})
		}

		return out
	}

	want := []node{
		{"Build~!!", 0, []node{
			{"Panels~", 1, []node{
				{"Grid~", 2, []node{{"Rows~", 3, nil}}},
				{"Total~", 2, nil},
			}},
			{"Log~", 1, nil},
		}},
		{"show~", 0, nil},
	}

	if diff := cmp.Diff(want, shape(file.Statements)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SameLineChild(t *testing.T) {
	file := parse(t, "Sniff~ ALL ╰──➤ detect~!! | sensors")

	s := file.Statements[0]
	if len(s.Params) != 1 || len(s.Children) != 1 || s.Children[0].Command != "detect~!!" {
		t.Errorf("unexpected tree: params=%d children=%d", len(s.Params), len(s.Children))
	}
}

func TestParse_DetachedDeepLine(t *testing.T) {
	file := parse(t, "╰──➤ ╰──➤ call~ a\nshow~ b")

	if len(file.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(file.Statements))
	}

	if s := file.Statements[0]; s.Command != "call~" || s.Indent != 2 {
		t.Errorf("detached statement = %q indent %d, want call~ indent 2", s.Command, s.Indent)
	}
}

func TestParse_Shell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cmd    string
		bridge string
	}{
		{"statement bridge", "~!! send [call~ | UWB]", ShellCommand, "send [ call~ | UWB ]"},
		{"empty bridge", "~!!", ShellCommand, ""},
		{"comment", "// set up sensors", ShellCommand, "set up sensors"},
		{"doc comment", "///  header ", ShellCommand, "header"},
		{"mid-statement bridge", "call~ x ~!! echo hi", "call~", "echo hi"},
		{"trailing comment", "call~ x // why", "call~", "why"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parse(t, tt.input)
			if len(file.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(file.Statements))
			}

			s := file.Statements[0]
			if s.Command != tt.cmd || !s.HasBridge || s.Bridge != tt.bridge {
				t.Errorf("got %q bridge=%v %q; want %q %q",
					s.Command, s.HasBridge, s.Bridge, tt.cmd, tt.bridge)
			}
		})
	}
}

// Stray leading tokens are a legal no-op: they produce no statement and no
// error.
func TestParse_StrayTokensAreLegalNoOp(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{".plx\n\nshow~ hello", []string{"show~"}},
		{"hello world\ncall~ x", []string{"call~"}},
		{`"just a string"`, nil},
		{"# ) ] ╰", nil},
		{"stray call~ x", []string{"call~"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := parse(t, tt.input)

			var got []string
			for _, s := range file.Statements {
				got = append(got, s.Command)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_UnterminatedList(t *testing.T) {
	file, errs := Parse(Tokenize("Sniff~ [ALL, sensors\nshow~ x"))

	if file == nil || len(file.Statements) != 2 {
		t.Fatalf("expected both statements despite the open list, got %v", file)
	}

	if len(errs) != 1 || errs[0].Code != CodeInvalidSyntax {
		t.Fatalf("errors = %v, want one %s", errs, CodeInvalidSyntax)
	}

	list, ok := file.Statements[0].Params[0].Value.(*List)
	if !ok || len(list.Items) != 2 {
		t.Errorf("open list = %v, want two items", file.Statements[0].Params[0].Value)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	src := "call~\n╰──➤ call~\n╰──➤ ╰──➤ call~\n╰──➤ ╰──➤ ╰──➤ call~"

	file, errs := Parse(Tokenize(src), WithMaxDepth(2))
	if file != nil {
		t.Error("expected nil file when the depth bound is exceeded")
	}

	if len(errs) != 1 || errs[0].Code != CodeInvalidSyntax {
		t.Fatalf("errors = %v, want one %s", errs, CodeInvalidSyntax)
	}

	if _, errs := Parse(Tokenize(src), WithMaxDepth(3)); len(errs) != 0 {
		t.Errorf("depth 3 should be accepted, got %v", errs)
	}

	if _, errs := Parse(Tokenize(src), WithMaxDepth(0)); len(errs) != 0 {
		t.Errorf("zero bound should disable the check, got %v", errs)
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := "Panel~!!\n╰──➤ ID~ [x\n~!! a b\n╰──➤ ╰──➤ Feed~ @s.t"

	file1, errs1 := Parse(Tokenize(src))
	file2, errs2 := Parse(Tokenize(src))

	if diff := cmp.Diff(file1, file2); diff != "" {
		t.Errorf("trees differ between runs:\n%s", diff)
	}

	if diff := cmp.Diff(errs1, errs2); diff != "" {
		t.Errorf("errors differ between runs:\n%s", diff)
	}
}

func TestParse_FreshNodesPerCall(t *testing.T) {
	tokens := Tokenize("call~ x")

	a, _ := Parse(tokens)
	b, _ := Parse(tokens)

	if a.Statements[0] == b.Statements[0] || a.Statements[0].Params[0] == b.Statements[0].Params[0] {
		t.Error("parses share nodes")
	}
}

func TestParse_TokensWithoutEOF(t *testing.T) {
	file, errs := Parse([]Token{{Kind: KwCall, Text: "call~"}, {Kind: KindIdent, Text: "x"}})
	if len(errs) != 0 || len(file.Statements) != 1 || len(file.Statements[0].Params) != 1 {
		t.Errorf("unexpected result %v %v", file, errs)
	}
}

func TestParseString(t *testing.T) {
	res := ParseString(t.Context(), "call~ test")

	if len(res.Tokens) != 3 || res.File == nil || res.Err() != nil {
		t.Fatalf("unexpected result %+v", res)
	}

	if got := res.File.Statements[0].Command; got != "call~" {
		t.Errorf("command = %q", got)
	}
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(t.Context(), strings.NewReader("show~ a\nshow~ b\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(res.File.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(res.File.Statements))
	}
}

func TestFile_All(t *testing.T) {
	file := parse(t, "a~\ncall~\n╰──➤ show~\n╰──➤ ╰──➤ get~\nStore~ @x")

	var got []string
	for s := range file.All() {
		got = append(got, s.Command)
	}

	if diff := cmp.Diff([]string{"call~", "show~", "get~", "Store~"}, got); diff != "" {
		t.Errorf("pre-order mismatch (-want +got):\n%s", diff)
	}
}
