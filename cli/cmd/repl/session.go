package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/plx/diag"
	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/lang"
	"github.com/ardnew/plx/log"
	"github.com/ardnew/plx/pkgstore"
)

// evaluation is the outcome of one eval-mode line.
type evaluation struct {
	diagnostics []diag.Diagnostic
	intents     []intent.ResolvedIntent
}

// failed reports whether any diagnostic is an error.
func (ev evaluation) failed() bool {
	errs, _ := diag.Count(ev.diagnostics)

	return errs > 0
}

// session evaluates REPL input against a registry. It remembers the last
// eval-mode parse so that control commands can inspect it.
type session struct {
	ctx      context.Context
	registry *intent.Registry
	store    *pkgstore.Store
	backend  intent.Backend
	logger   log.Logger
	last     *lang.Result
}

// eval parses line, validates it against the registry and, if no errors were
// found, resolves every statement for the current backend.
func (s *session) eval(line string) evaluation {
	res := lang.ParseString(s.ctx, line, lang.WithLogger(s.logger))
	s.last = &res

	errs := slices.Clone(res.Errors)
	if res.File != nil {
		errs = append(errs, intent.Validate(res.File, s.registry, nil)...)
	}

	ev := evaluation{diagnostics: diag.FromErrors(errs)}
	if ev.failed() || res.File == nil {
		s.logger.TraceContext(s.ctx, "repl eval failed",
			slog.Int("diagnostics", len(ev.diagnostics)))

		return ev
	}

	r := intent.NewResolver(s.registry,
		intent.Context{Backend: s.backend},
		intent.WithLogger(s.logger),
		intent.WithContext(s.ctx),
	)
	ev.intents = r.ResolveAll(res.File.Statements)

	s.logger.TraceContext(s.ctx, "repl eval",
		slog.Int("statements", len(res.File.Statements)),
		slog.Int("intents", len(ev.intents)))

	return ev
}

// setBackend switches the render backend. An empty name leaves it unchanged.
func (s *session) setBackend(name string) error {
	if name == "" {
		return nil
	}

	b, err := intent.ParseBackend(name)
	if err != nil {
		return err
	}

	s.backend = b

	return nil
}

// listIntents returns one line per intent matching query.
func (s *session) listIntents(query string) string {
	found := s.registry.Find(query)
	if len(found) == 0 {
		return fmt.Sprintf("no intents match %q", query)
	}

	var b strings.Builder

	for _, in := range found {
		mark := " "
		if slices.Contains(s.registry.Backends(in.Name), s.backend) {
			mark = "*"
		}

		fmt.Fprintf(&b, "%s %-18s %-12s %s\n", mark, in.Name, in.Command, in.Description)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// tokens returns the token stream of the last eval-mode line.
func (s *session) tokens() string {
	if s.last == nil {
		return "nothing evaluated yet"
	}

	var b strings.Builder

	for i, t := range s.last.Tokens {
		fmt.Fprintf(&b, "%d: %s = %q\n", i, t.Kind, t.Text)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// tree returns the syntax tree of the last eval-mode line.
func (s *session) tree() string {
	if s.last == nil {
		return "nothing evaluated yet"
	}

	if s.last.File == nil {
		return "no syntax tree"
	}

	var b strings.Builder
	if err := s.last.File.FormatTree(s.ctx, &b); err != nil {
		return err.Error()
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// packageStatus describes the package named name.
func (s *session) packageStatus(name string) string {
	if s.store == nil {
		return "no package store"
	}

	st := s.store.Check(name)

	switch {
	case !st.Exists:
		return fmt.Sprintf("%s doesn't exist in the package registry", name)
	case st.Installed && st.Package == nil:
		return name + " is installed"
	}

	p := st.Package

	state := "available"
	if st.Installed {
		state = "installed"
	}

	return fmt.Sprintf("%s %s (%s, %s) %s", p.Name, p.Version, p.File(), state, p.Description)
}

// packages returns the names in the package catalogue.
func (s *session) packages() []string {
	if s.store == nil {
		return nil
	}

	all := s.store.All()

	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}

	return names
}

// commands returns every command spelling that may start a statement:
// the command keywords followed by the registry's commands, without
// duplicates.
func (s *session) commands() []string {
	var out []string

	for c := range lang.Commands() {
		out = append(out, c)
	}

	for _, c := range s.registry.Commands() {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}
