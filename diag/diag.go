// Package diag turns parser errors into diagnostics and renders them for
// display.
package diag

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/plx/lang"
)

// Severity ranks a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Range is a source span. End equals Start for point diagnostics.
type Range struct {
	Start lang.Position `json:"start" yaml:"start"`
	End   lang.Position `json:"end"   yaml:"end"`
}

// Diagnostic is a message about a location in PlexCode source.
type Diagnostic struct {
	Severity   Severity  `json:"severity"             yaml:"severity"`
	Message    string    `json:"message"              yaml:"message"`
	Code       lang.Code `json:"code"                 yaml:"code"`
	Range      Range     `json:"range"                yaml:"range"`
	Suggestion string    `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// New returns a point diagnostic at start.
func New(sev Severity, code lang.Code, msg string, start lang.Position) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Message:  msg,
		Code:     code,
		Range:    Range{Start: start, End: start},
	}
}

// FromError converts a parser error into an error diagnostic.
func FromError(e *lang.ParserError) Diagnostic {
	d := New(SeverityError, e.Code, e.Message, e.Pos)
	d.Suggestion = e.Suggestion

	return d
}

// FromErrors converts each parser error with [FromError].
func FromErrors(errs []*lang.ParserError) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromError(e)
	}

	return out
}

// Count returns the number of error and warning diagnostics in ds.
func Count(ds []Diagnostic) (errors, warnings int) {
	for _, d := range ds {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	return errors, warnings
}

// String returns d formatted by [Format].
func (d Diagnostic) String() string { return Format(d) }

// Format renders d as plain text:
//
//	[ERROR] Unknown command 'cal~' (E001)
//	  at line 1, column 1
//	  Suggestion: Did you mean 'call~'?
func Format(d Diagnostic) string { return plain.Format(d) }

// FormatAll renders each diagnostic with [Format], separated by blank lines.
func FormatAll(ds []Diagnostic) string { return plain.FormatAll(ds) }

// Styles colors the parts of a rendered diagnostic. The zero value renders
// plain text.
type Styles struct {
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Code       lipgloss.Style
	Location   lipgloss.Style
	Suggestion lipgloss.Style
}

//nolint:gochecknoglobals
var plain Styles

// DefaultStyles returns the terminal styles used for diagnostics, with colors
// chosen for standard output.
func DefaultStyles() Styles {
	return stylesFrom(lipgloss.NewStyle)
}

// StylesFor returns [DefaultStyles] with colors chosen for w. A w that is not
// a terminal gets plain text.
func StylesFor(w io.Writer) Styles {
	return stylesFrom(lipgloss.NewRenderer(w).NewStyle)
}

func stylesFrom(style func() lipgloss.Style) Styles {
	return Styles{
		Error:      style().Foreground(lipgloss.Color("1")).Bold(true),
		Warning:    style().Foreground(lipgloss.Color("3")).Bold(true),
		Info:       style().Foreground(lipgloss.Color("6")),
		Code:       style().Foreground(lipgloss.Color("8")),
		Location:   style().Foreground(lipgloss.Color("8")),
		Suggestion: style().Foreground(lipgloss.Color("4")),
	}
}

func (s Styles) severity(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityWarning:
		return s.Warning
	case SeverityInfo:
		return s.Info
	default:
		return s.Error
	}
}

// Format renders d with s.
func (s Styles) Format(d Diagnostic) string {
	var sb strings.Builder

	sb.WriteString(s.severity(d.Severity).Render("[" + strings.ToUpper(string(d.Severity)) + "]"))
	sb.WriteString(" " + d.Message + " ")
	sb.WriteString(s.Code.Render("(" + string(d.Code) + ")"))
	sb.WriteString("\n")
	sb.WriteString(s.Location.Render(
		"  at line " + strconv.Itoa(d.Range.Start.Line) +
			", column " + strconv.Itoa(d.Range.Start.Column),
	))
	sb.WriteString("\n")

	if d.Suggestion != "" {
		sb.WriteString(s.Suggestion.Render("  Suggestion: " + d.Suggestion))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAll renders each diagnostic with s, separated by blank lines.
func (s Styles) FormatAll(ds []Diagnostic) string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = s.Format(d)
	}

	return strings.Join(out, "\n")
}
