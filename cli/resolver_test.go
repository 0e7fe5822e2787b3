package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

// resolveFlag loads doc with the given section and resolves the flag name.
func resolveFlag(t *testing.T, section, doc, name string) any {
	t.Helper()

	resolver, err := resolve(section)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve(%q) failed: %v", section, err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolve_Values(t *testing.T) {
	t.Parallel()

	doc := `
log-level: debug
log:
  format: text
  caller: true
pprof_dir: /tmp/pprof
catalogue:
  - a.yaml
  - b.yaml
depth: 42
ratio: 0.5
`

	tests := []struct {
		name string
		flag string
		want any
	}{
		{"flat", "log-level", "debug"},
		{"nested", "log-format", "text"},
		{"nested_bool", "log-caller", true},
		{"underscore", "pprof-dir", "/tmp/pprof"},
		{"list", "catalogue", []any{"a.yaml", "b.yaml"}},
		{"integer", "depth", "42"},
		{"float", "ratio", "0.5"},
		{"missing", "backend", nil},
		{"underscore_lookup", "pprof_dir", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveFlag(t, "plx", doc, tt.flag)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.flag, diff)
			}
		})
	}
}

func TestResolve_Section(t *testing.T) {
	t.Parallel()

	doc := `
plx:
  backend: html
other:
  foo: bar
backend: shell
`

	if got := resolveFlag(t, "plx", doc, "backend"); got != "html" {
		t.Errorf("expected backend=html from section, got %v", got)
	}

	// Only the section is used when it exists.
	if got := resolveFlag(t, "plx", doc, "other-foo"); got != nil {
		t.Errorf("config should not contain keys outside the section, got %v", got)
	}

	// Without a matching section the whole document applies.
	if got := resolveFlag(t, "missing", doc, "other-foo"); got != "bar" {
		t.Errorf("expected other-foo=bar, got %v", got)
	}
}

func TestResolve_InvalidAndEmpty(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"invalid": "backend: [unclosed",
		"empty":   "",
		"scalar":  "just a string",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := resolveFlag(t, "plx", doc, "backend"); got != nil {
				t.Errorf("expected nil value, got %v", got)
			}
		})
	}
}

func TestResolve_Kong(t *testing.T) {
	t.Parallel()

	var cli struct {
		Backend string `default:"shell"`
		Depth   int    `default:"1"`
		Quiet   bool
	}

	parser, err := kong.New(&cli,
		kong.Resolvers(mustResolver(t, "backend: ncom\ndepth: 3\nquiet: true\n")),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--depth=5"}); err != nil {
		t.Fatal(err)
	}

	// Command-line flags win over the file.
	if cli.Backend != "ncom" || cli.Depth != 5 || !cli.Quiet {
		t.Errorf("got backend=%q depth=%d quiet=%v, want ncom 5 true",
			cli.Backend, cli.Depth, cli.Quiet)
	}
}

func mustResolver(t *testing.T, doc string) kong.Resolver {
	t.Helper()

	r, err := resolve("plx")(bytes.NewBufferString(doc))
	if err != nil {
		t.Fatal(err)
	}

	return r
}
