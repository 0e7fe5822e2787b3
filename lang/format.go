package lang

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how a syntax tree is written.
type Format int

const (
	// FormatTree is an indented outline of statements and parameters.
	FormatTree Format = iota
	// FormatJSON is the tree encoded as JSON.
	FormatJSON
	// FormatYAML is the tree encoded as YAML.
	FormatYAML
	// FormatPlx is PlexCode source regenerated from the tree.
	FormatPlx
)

var formatName = [...]string{"tree", "json", "yaml", "plx"}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatName) {
		return formatName[f]
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Formats returns an iterator over the names of all formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range formatName {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseFormat returns the format named s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatName {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Format(i), nil
		}
	}

	return 0, ErrUnknownFormat.With(slog.String("format", s))
}

// Write writes f to w in the given format. Indent sets the indentation width
// of structured formats; zero selects compact output.
func (f *File) Write(ctx context.Context, w io.Writer, format Format, indent int) error {
	switch format {
	case FormatTree:
		return f.FormatTree(ctx, w)
	case FormatJSON:
		return f.FormatJSON(ctx, w, indent)
	case FormatYAML:
		return f.FormatYAML(ctx, w, indent)
	case FormatPlx:
		return f.Format(ctx, w)
	}

	return ErrUnknownFormat.With(slog.String("format", format.String()))
}

// Format writes f as PlexCode source. Each statement is placed on its own
// line prefixed with one descend marker per level of nesting. Tokens after a
// shell bridge are re-joined with single spaces, so spacing inside a
// captured bridge is not preserved.
func (f *File) Format(_ context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for s := range f.All() {
		bw.WriteString(FormatStatement(s))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// FormatStatement returns the source line for s alone, without children.
func FormatStatement(s *Statement) string {
	var sb strings.Builder

	for range s.Indent {
		sb.WriteString(TreeDown + " ")
	}

	if s.IsShell() {
		sb.WriteString("~!!")

		if s.Bridge != "" {
			sb.WriteString(" " + s.Bridge)
		}

		return sb.String()
	}

	sb.WriteString(s.Command)

	for _, p := range s.Params {
		sb.WriteByte(' ')

		if p.Key != "" {
			sb.WriteString(p.Key + ": ")
		}

		sb.WriteString(p.Value.String())
	}

	if s.HasBridge {
		sb.WriteString(" ~!!")

		if s.Bridge != "" {
			sb.WriteString(" " + s.Bridge)
		}
	}

	return sb.String()
}

// FormatTree writes an indented outline of f, one node per line.
func (f *File) FormatTree(_ context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("File\n")

	for _, s := range f.Statements {
		writeTree(bw, s, 1)
	}

	return bw.Flush()
}

func writeTree(w *bufio.Writer, s *Statement, depth int) {
	pad := strings.Repeat("  ", depth)

	w.WriteString(pad + "Statement " + strconv.Quote(s.Command) +
		" @" + s.Pos.String() + " indent=" + strconv.Itoa(s.Indent) + "\n")

	for _, p := range s.Params {
		w.WriteString(pad + "  Param ")

		if p.Key != "" {
			w.WriteString(p.Key + "=")
		}

		w.WriteString(valueKind(p.Value) + " " + p.Value.String() + "\n")
	}

	if s.HasBridge {
		w.WriteString(pad + "  Bridge " + strconv.Quote(s.Bridge) + "\n")
	}

	for _, c := range s.Children {
		writeTree(w, c, depth+1)
	}
}

func valueKind(v Value) string {
	switch v.(type) {
	case *String:
		return "String"
	case *Number:
		return "Number"
	case *Reference:
		return "Reference"
	case *List:
		return "List"
	}

	return "Value"
}

// FormatJSON writes f as JSON.
func (f *File) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(f, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(f)
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// FormatYAML writes f as YAML. Zero indent selects flow style.
func (f *File) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, f.ToMap(), opts...)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}
