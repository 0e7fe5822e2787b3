package intent

import (
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/plx/lang"
)

// Validate checks a parsed file against registry and state. It reports:
//
//   - E001 for a command that matches no intent,
//   - E002 for an intent with required parameters given none,
//   - E004 for a reference that does not resolve in state.
//
// References are only checked when state is non-nil. Shell statements are
// not checked. A nil registry uses [Default].
func Validate(file *lang.File, registry *Registry, state map[string]any) []*lang.ParserError {
	if registry == nil {
		registry = Default()
	}

	var errs []*lang.ParserError

	for s := range file.All() {
		if s.IsShell() {
			continue
		}

		in, ok := registry.Lookup(s.Command)

		switch {
		case !ok:
			errs = append(errs, unknownCommand(s, registry))
		case len(in.Required) > 0 && len(s.Params) == 0:
			errs = append(errs, lang.NewMissingParameterError(s.Command, s.Pos))
		}

		if state == nil {
			continue
		}

		for _, ref := range s.References() {
			if !LookupReference(state, ref.Path) {
				errs = append(errs, lang.NewUnresolvedReferenceError(ref.Path, ref.Pos))
			}
		}
	}

	return errs
}

// unknownCommand builds an E001 error. Without a close match among the
// common commands, the registered commands are searched instead.
func unknownCommand(s *lang.Statement, registry *Registry) *lang.ParserError {
	err := lang.NewUnknownCommandError(s.Command, s.Pos)

	if err.Suggestion == "" {
		if similar, ok := lang.SuggestCommand(s.Command, registry.Commands()...); ok {
			err.Suggestion = "Did you mean '" + similar + "'?"
		}
	}

	return err
}

// LookupReference reports whether the reference path resolves to a non-nil
// value in state. The leading "@" and an optional leading "." are dropped,
// and the rest is evaluated as a member access expression, so "@.a.b" reads
// state["a"]["b"].
func LookupReference(state map[string]any, path string) bool {
	src := strings.TrimPrefix(strings.TrimPrefix(path, "@"), ".")
	if src == "" {
		return false
	}

	program, err := expr.Compile(src, expr.Env(state))
	if err != nil {
		return false
	}

	v, err := expr.Run(program, state)

	return err == nil && v != nil
}
