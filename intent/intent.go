package intent

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/plx/pkg"
)

// Category groups intents by the kind of action they perform.
type Category string

const (
	CategoryQuery   Category = "QUERY"
	CategoryControl Category = "CONTROL"
	CategoryUI      Category = "UI"
	CategoryState   Category = "STATE"
	CategoryAuth    Category = "AUTH"
	CategoryDevice  Category = "DEVICE"
	CategoryExec    Category = "EXEC"
	CategoryPackage Category = "PACKAGE"
)

// Backend identifies an output dialect an intent can be rendered into.
type Backend string

const (
	Shell  Backend = "shell"
	HTML   Backend = "html"
	NCOM   Backend = "ncom"
	Python Backend = "python"
)

// Backends returns the closed set of backends in display order.
func Backends() []Backend { return []Backend{Shell, HTML, NCOM, Python} }

// ParseBackend returns the backend named s, ignoring case.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Backends(), b) {
		return b, nil
	}

	return "", pkg.ErrInvalidBackend.Wrapf(
		"%q (valid: shell, html, ncom, python)", s,
	)
}

func (b Backend) String() string { return string(b) }

// UnmarshalText implements [encoding.TextUnmarshaler] so a Backend can be
// decoded directly from flags and configuration files.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}

	*b = parsed

	return nil
}

// Intent is a named action bound to one canonical command spelling.
//
// Required and Optional name the parameters the intent reads. Renderers
// are kept by the [Registry], not by the Intent itself.
type Intent struct {
	Name        string   `json:"name"                  yaml:"name"`
	Command     string   `json:"command"               yaml:"command"`
	Category    Category `json:"category"              yaml:"category"`
	Required    []string `json:"required,omitempty"    yaml:"required,omitempty"`
	Optional    []string `json:"optional,omitempty"    yaml:"optional,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"    yaml:"examples,omitempty"`
}

func (in Intent) clone() Intent {
	in.Required = slices.Clone(in.Required)
	in.Optional = slices.Clone(in.Optional)
	in.Examples = slices.Clone(in.Examples)

	return in
}

// RenderFunc synthesizes backend output from resolved parameters.
type RenderFunc func(Params) string

// Renderers maps each supported backend of an intent to its RenderFunc.
type Renderers map[Backend]RenderFunc

// Params holds the parameters extracted from a statement. Values are
// string, float64, or []any of those.
type Params map[string]any

// Text returns the value of the first key that holds a non-empty value,
// formatted as text. Lists are joined with commas.
func (p Params) Text(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok {
			continue
		}

		if s := formatValue(v); s != "" {
			return s, true
		}
	}

	return "", false
}

// Or is like [Params.Text] but returns def when no key holds a value.
func (p Params) Or(def string, keys ...string) string {
	if s, ok := p.Text(keys...); ok {
		return s
	}

	return def
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = formatValue(item)
		}

		return strings.Join(items, ",")
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// words joins the non-empty parts with single spaces.
func words(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool {
		return s == ""
	}), " ")
}
