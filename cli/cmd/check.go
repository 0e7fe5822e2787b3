package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/plx/diag"
	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/lang"
	"github.com/ardnew/plx/pkg"
)

// Check validates each source: parse errors, unknown commands, missing
// parameters and, when a state file is given, unresolved references.
type Check struct {
	State string `help:"YAML state file that @ references must resolve against." placeholder:"FILE" type:"existingfile"`

	Source []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source" type:"existingfile"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	state, err := c.loadState()
	if err != nil {
		return err
	}

	results, err := s.parse(ctx, c.Source)
	if err != nil {
		return err
	}

	styles := diag.StylesFor(s.Stdout)

	var failed []error

	for i, res := range results {
		header(s.Stdout, res.name, i, len(results))

		errs := append([]*lang.ParserError(nil), res.Errors...)
		if res.File != nil {
			errs = append(errs, intent.Validate(res.File, s.Registry, state)...)
		}

		ds := diag.FromErrors(errs)
		nerr, nwarn := diag.Count(ds)

		s.Logger.DebugContext(ctx, "checked source",
			slog.String("file", res.name),
			slog.Int("errors", nerr),
			slog.Int("warnings", nwarn),
		)

		if len(ds) > 0 {
			fmt.Fprintln(s.Stdout, styles.FormatAll(ds))
		}

		fmt.Fprintf(s.Stdout, "✓ %d errors, %d warnings\n", nerr, nwarn)

		if nerr > 0 {
			failed = append(failed, pkg.ErrDiagnostics.Wrapf("%s: %d errors", res.name, nerr))
		}
	}

	return errors.Join(failed...)
}

// loadState reads the state file, or returns nil if none was given so that
// references go unchecked.
func (c *Check) loadState() (map[string]any, error) {
	if c.State == "" {
		return nil, nil
	}

	file, err := os.Open(c.State)
	if err != nil {
		return nil, ErrOpenFile.With(slog.String("file", c.State)).Wrap(err)
	}
	defer file.Close()

	state, err := intent.LoadState(file)
	if err != nil {
		return nil, ErrLoadState.With(slog.String("file", c.State)).Wrap(err)
	}

	return state, nil
}
