package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/plx/diag"
	"github.com/ardnew/plx/lang"
	"github.com/ardnew/plx/pkg"
)

// report prints errs as diagnostics on the session stderr and returns
// [pkg.ErrDiagnostics], or returns nil if errs is empty.
func (s *Session) report(name string, errs []*lang.ParserError) error {
	if len(errs) == 0 {
		return nil
	}

	ds := diag.FromErrors(errs)
	nerr, nwarn := diag.Count(ds)

	fmt.Fprintln(s.Stderr, "\n=== ERRORS ===")
	fmt.Fprintln(s.Stderr)
	fmt.Fprintln(s.Stderr, diag.StylesFor(s.Stderr).FormatAll(ds))

	return pkg.ErrDiagnostics.Wrap(
		lang.NewError(name).With(
			slog.Int("errors", nerr),
			slog.Int("warnings", nwarn),
		),
	)
}
