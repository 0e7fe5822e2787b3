package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/plx/lang"
	"github.com/ardnew/plx/pkg"
)

// AST prints the syntax tree of each source.
type AST struct {
	Format string `default:"tree" enum:"tree,json,yaml,plx" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                              help:"Indent width for JSON and YAML output." short:"i"`

	Source []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source" type:"existingfile"`
}

// Run executes the ast command. Sources with parse errors are reported and
// not printed.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := lang.ParseFormat(a.Format)
	if err != nil {
		return pkg.ErrInvalidFormat.Wrap(err)
	}

	s := sessionFrom(ctx)

	results, err := s.parse(ctx, a.Source)
	if err != nil {
		return err
	}

	var failed []error

	for i, res := range results {
		if rerr := s.report(res.name, res.Errors); rerr != nil {
			failed = append(failed, rerr)

			continue
		}

		if res.File == nil {
			failed = append(failed, pkg.ErrNoAST.Wrapf("%s", res.name))

			continue
		}

		header(s.Stdout, res.name, i, len(results))

		if err := res.File.Write(ctx, s.Stdout, format, a.Indent); err != nil {
			return ErrEncode.
				With(slog.String("file", res.name), slog.String("format", a.Format)).
				Wrap(err)
		}
	}

	return errors.Join(failed...)
}
