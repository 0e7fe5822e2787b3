package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/pkg"
	"github.com/ardnew/plx/pkgstore"
)

// newTestSession returns a shell session reading stdin from the given text
// and writing to the returned buffers.
func newTestSession(t *testing.T, stdin string) (s *Session, stdout, stderr *bytes.Buffer) {
	t.Helper()

	s, err := NewSession(context.Background(), intent.Shell)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	stdout, stderr = new(bytes.Buffer), new(bytes.Buffer)
	s.Stdin, s.Stdout, s.Stderr = strings.NewReader(stdin), stdout, stderr
	s.Store.SetStepDelay(0)

	return s, stdout, stderr
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// readSources opens paths and returns the source names and their
// concatenated content.
func readSources(t *testing.T, s *Session, paths ...string) ([]string, string) {
	t.Helper()

	srcs, err := s.open(paths)
	if err != nil {
		t.Fatalf("open(%q) error = %v", paths, err)
	}
	defer closeAll(srcs)

	var (
		names []string
		sb    strings.Builder
	)

	for _, src := range srcs {
		names = append(names, src.name)

		if _, err := io.Copy(&sb, src); err != nil {
			t.Fatalf("reading %s: %v", src.name, err)
		}
	}

	return names, sb.String()
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(context.Background(), "")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if s.Backend != intent.Shell {
		t.Errorf("Backend = %q, want %q", s.Backend, intent.Shell)
	}

	if _, ok := s.Registry.Lookup("import~"); !ok {
		t.Error("registry has no import~ intent")
	}

	if got, want := len(s.Store.All()), len(pkgstore.KnownPackages()); got != want {
		t.Errorf("store has %d packages, want %d", got, want)
	}
}

func TestNewSession_Catalogue(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "catalogue.yaml", `- name: gimp
  version: 2.10.0
  source: gimp.org/NCOM
  type: plx
  description: GNU Image Manipulation Program
`)

	s, err := NewSession(context.Background(), intent.HTML, path)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if !s.Store.Available("gimp") {
		t.Error("catalogue package gimp is not available")
	}

	_, err = NewSession(context.Background(), intent.HTML, filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrOpenFile) {
		t.Errorf("NewSession(missing) error = %v, want %v", err, ErrOpenFile)
	}
}

func TestSessionFrom_Default(t *testing.T) {
	s := sessionFrom(context.Background())
	if s == nil || s.Registry == nil || s.Store == nil {
		t.Fatalf("sessionFrom() = %+v, want a usable session", s)
	}

	want, _, _ := newTestSession(t, "")
	if got := sessionFrom(WithSession(context.Background(), want)); got != want {
		t.Error("sessionFrom() did not return the stored session")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	file1 := writeSource(t, dir, "file1.plx", "one")
	file2 := writeSource(t, dir, "file2.plx", "two")

	link := filepath.Join(dir, "link.plx")
	if err := os.Symlink(file1, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		paths       []string
		wantNames   []string
		wantContent string
	}{
		{"no paths reads stdin", nil, []string{stdinSource}, "stdin"},
		{"single file", []string{file1}, []string{file1}, "one"},
		{"multiple files in order", []string{file2, file1}, []string{file2, file1}, "twoone"},
		{"duplicate paths", []string{file1, file1, file1}, []string{file1}, "one"},
		{"symlink duplicate", []string{file1, link}, []string{file1}, "one"},
		{"stdin last", []string{stdinSource, file1}, []string{file1, stdinSource}, "onestdin"},
		{"stdin collapsed", []string{stdinSource, stdinSource}, []string{stdinSource}, "stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, "stdin")

			names, content := readSources(t, s, tt.paths...)

			if diff := cmp.Diff(tt.wantNames, names); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}

			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestOpen_RelativeAbsoluteDuplicates(t *testing.T) {
	dir := t.TempDir()
	abs := writeSource(t, dir, "source.plx", "content")

	t.Chdir(dir)

	s, _, _ := newTestSession(t, "")

	names, content := readSources(t, s, "source.plx", abs)

	if diff := cmp.Diff([]string{"source.plx"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if content != "content" {
		t.Errorf("content = %q, want %q", content, "content")
	}
}

func TestOpen_Nonexistent(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "exists.plx", "x")

	s, _, _ := newTestSession(t, "")

	_, err := s.open([]string{file, filepath.Join(dir, "missing.plx")})
	if !errors.Is(err, ErrOpenFile) {
		t.Errorf("open() error = %v, want %v", err, ErrOpenFile)
	}
}

func TestHeader(t *testing.T) {
	var b strings.Builder

	header(&b, "a.plx", 0, 1)

	if b.Len() != 0 {
		t.Errorf("header for a single source = %q, want empty", b.String())
	}

	header(&b, "a.plx", 0, 2)
	header(&b, "b.plx", 1, 2)

	if got, want := b.String(), "==> a.plx <==\n\n==> b.plx <==\n"; got != want {
		t.Errorf("header() = %q, want %q", got, want)
	}
}

func TestTokensRun(t *testing.T) {
	s, stdout, _ := newTestSession(t, "Sniff~ [ALL]\n")

	if err := (&Tokens{Source: []string{stdinSource}}).Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := stdout.String()
	for _, want := range []string{`0: `, `"Sniff~"`, `"ALL"`, "(line 1, col 1)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestASTRun(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		src     string
		want    []string
		wantErr error
	}{
		{"tree", "tree", "Sniff~ [ALL]", []string{"File", `Statement "Sniff~"`}, nil},
		{"plx", "plx", "Sniff~ [ALL]", []string{"Sniff~"}, nil},
		{"yaml", "yaml", "call~ x", []string{"statements:", "command:"}, nil},
		{"invalid format", "toml", "call~ x", nil, pkg.ErrInvalidFormat},
		{"parse error", "tree", "call~ [a, b", nil, pkg.ErrDiagnostics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, stdout, stderr := newTestSession(t, tt.src)

			cmd := &AST{Format: tt.format, Indent: 2, Source: []string{stdinSource}}

			err := cmd.Run(WithSession(context.Background(), s))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				if errors.Is(tt.wantErr, pkg.ErrDiagnostics) && !strings.Contains(stderr.String(), "=== ERRORS ===") {
					t.Errorf("stderr missing error banner:\n%s", stderr.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}
		})
	}
}

func TestASTRun_JSON(t *testing.T) {
	s, stdout, _ := newTestSession(t, "Sniff~ [ALL]\ncall~ x")

	cmd := &AST{Format: "json", Indent: 2, Source: []string{stdinSource}}
	if err := cmd.Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}

	stmts, ok := doc["statements"].([]any)
	if !ok || len(stmts) != 2 {
		t.Errorf("statements = %v, want 2 entries", doc["statements"])
	}
}

func TestResolveRun_Text(t *testing.T) {
	s, stdout, _ := newTestSession(t, "Sniff~ [ALL]\nSniff~\ncall~ x")

	cmd := &Resolve{Format: formatText, Detail: true, Source: []string{stdinSource}}
	if err := cmd.Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"✓ Parsed 3 statements",
		"✓ Resolved 3 intents",
		"=== RESOLVED INTENTS ===",
		"Sniff~ → device.sniff (2x)",
		"call~ → exec.call (1x)",
		"=== DETAILED INTENTS ===",
		"[1] device.sniff",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResolveRun_JSON(t *testing.T) {
	s, stdout, _ := newTestSession(t, "Sniff~ [ALL]")
	s.Backend = intent.NCOM

	cmd := &Resolve{Format: formatJSON, Indent: 0, Source: []string{stdinSource}}
	if err := cmd.Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []struct {
		Source  string `json:"source"`
		Intents []struct {
			Backend string `json:"backend"`
			Output  string `json:"output"`
		} `json:"intents"`
	}

	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}

	if len(got) != 1 || len(got[0].Intents) != 1 {
		t.Fatalf("got %+v, want one source with one intent", got)
	}

	if ri := got[0].Intents[0]; ri.Backend != "ncom" || ri.Output != "NCOM_SNIFF[ALL]" {
		t.Errorf("intent = %+v, want ncom output NCOM_SNIFF[ALL]", ri)
	}
}

func TestResolveRun_ParseError(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.plx", "Sniff~")
	bad := writeSource(t, dir, "bad.plx", "call~ [a, b")

	s, stdout, stderr := newTestSession(t, "")

	err := (&Resolve{Format: formatText, Source: []string{bad, good}}).Run(WithSession(context.Background(), s))
	if !errors.Is(err, pkg.ErrDiagnostics) {
		t.Fatalf("Run() error = %v, want %v", err, pkg.ErrDiagnostics)
	}

	if !strings.Contains(stderr.String(), "E003") {
		t.Errorf("stderr missing E003:\n%s", stderr.String())
	}

	if !strings.Contains(stdout.String(), "✓ Resolved 1 intents") {
		t.Errorf("good source was not resolved:\n%s", stdout.String())
	}
}

func TestCheckRun(t *testing.T) {
	dir := t.TempDir()
	state := writeSource(t, dir, "state.yaml", "attributes:\n  value: 1\npair: UWB\n")

	tests := []struct {
		name    string
		src     string
		state   string
		want    []string
		wantErr bool
	}{
		{"clean", "Sniff~ [ALL]\ncall~ x", "", []string{"✓ 0 errors, 0 warnings"}, false},
		{"unknown command", "Start~ now", "", []string{"E001", "✓ 1 errors, 0 warnings"}, true},
		{"missing parameter", "detect~!!", "", []string{"E002"}, true},
		{"references unchecked", "Store~ @.missing", "", []string{"✓ 0 errors"}, false},
		{"resolved reference", "Store~ @.attributes.value", state, []string{"✓ 0 errors"}, false},
		{"unresolved reference", "Store~ @.missing", state, []string{"E004"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, stdout, _ := newTestSession(t, tt.src)

			err := (&Check{State: tt.state, Source: []string{stdinSource}}).Run(WithSession(context.Background(), s))
			if tt.wantErr != errors.Is(err, pkg.ErrDiagnostics) {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}
		})
	}
}

func TestCheckRun_BadState(t *testing.T) {
	dir := t.TempDir()
	state := writeSource(t, dir, "state.yaml", "- not\n- a mapping\n")

	s, _, _ := newTestSession(t, "call~ x")

	err := (&Check{State: state, Source: []string{stdinSource}}).Run(WithSession(context.Background(), s))
	if !errors.Is(err, ErrLoadState) {
		t.Errorf("Run() error = %v, want %v", err, ErrLoadState)
	}
}

func TestIntentsRun(t *testing.T) {
	tests := []struct {
		name   string
		format string
		query  string
		want   string
	}{
		{"table", formatText, "sniff", "device.sniff"},
		{"backend marker", formatText, "sniff", "shell*"},
		{"yaml", formatYAML, "sniff", "name: device.sniff"},
		{"json", formatJSON, "panel", `"name":`},
		{"no match", formatText, "qqqzzzxxx", `no intents match "qqqzzzxxx"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, stdout, _ := newTestSession(t, "")

			cmd := &Intents{Format: tt.format, Indent: 2, Query: tt.query}
			if err := cmd.Run(WithSession(context.Background(), s)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, stdout.String())
			}
		})
	}
}

func TestEncode_InvalidFormat(t *testing.T) {
	var b bytes.Buffer

	if err := encode(context.Background(), &b, "toml", 2, 1); !errors.Is(err, ErrEncode) {
		t.Errorf("encode(toml) error = %v, want %v", err, ErrEncode)
	}
}

func TestPkgListRun(t *testing.T) {
	s, stdout, _ := newTestSession(t, "")
	s.Store.MarkInstalled("blender")

	if err := (&PkgList{Format: formatText}).Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"NAME", "blender", "blender.k!t", "✓", "unreal"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestPkgInfoRun(t *testing.T) {
	s, stdout, _ := newTestSession(t, "")
	ctx := WithSession(context.Background(), s)

	if err := (&PkgInfo{Format: formatText, Name: "photoshop"}).Run(ctx); err != nil {
		t.Fatalf("Run(photoshop) error = %v", err)
	}

	for _, want := range []string{"Name:         photoshop", "Source:       adobe.com/NCOM", "Installed:    false"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}

	stdout.Reset()

	err := (&PkgInfo{Format: formatText, Name: "nope"}).Run(ctx)
	if !errors.Is(err, pkgstore.ErrNotFound) {
		t.Errorf("Run(nope) error = %v, want %v", err, pkgstore.ErrNotFound)
	}

	if !strings.Contains(stdout.String(), "doesn't exist in the package registry") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestPkgInstallRun(t *testing.T) {
	tests := []struct {
		name          string
		stdin         string
		yes           bool
		pkg           string
		want          []string
		wantInstalled bool
		wantErr       error
	}{
		{
			name:          "confirmed",
			stdin:         "y\n",
			pkg:           "blender",
			want:          []string{"|| Y", "|| Now installing blender.k!t from blender.org/NCOM", "installed successfully!"},
			wantInstalled: true,
		},
		{
			name:          "yes flag",
			yes:           true,
			pkg:           "chrome",
			want:          []string{"|| Now installing chrome.k!t", "installed successfully!"},
			wantInstalled: true,
		},
		{
			name:  "declined",
			stdin: "n\n",
			pkg:   "unity",
			want:  []string{"Would you like me to install"},
		},
		{
			name:    "unknown",
			yes:     true,
			pkg:     "nope",
			want:    []string{"doesn't exist in the package registry"},
			wantErr: pkgstore.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, stdout, _ := newTestSession(t, tt.stdin)

			err := (&PkgInstall{Yes: tt.yes, Name: tt.pkg}).Run(WithSession(context.Background(), s))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}

			if got := s.Store.Installed(tt.pkg); got != tt.wantInstalled {
				t.Errorf("Installed(%q) = %v, want %v", tt.pkg, got, tt.wantInstalled)
			}
		})
	}
}

func TestPkgInstallRun_AlreadyInstalled(t *testing.T) {
	s, stdout, _ := newTestSession(t, "")
	s.Store.MarkInstalled("vscode")

	if err := (&PkgInstall{Name: "vscode"}).Run(WithSession(context.Background(), s)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := stdout.String(), "|| vscode is already installed.\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" yes ":   true,
		"n\n":     false,
		"":        false,
		"maybe":   false,
		"no\ny\n": false,
	} {
		if got := confirm(strings.NewReader(in)); got != want {
			t.Errorf("confirm(%q) = %v, want %v", in, got, want)
		}
	}
}
