package cmd

import (
	"context"
	"fmt"
)

// Tokens prints the token stream of each source.
type Tokens struct {
	Source []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source" type:"existingfile"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	results, err := s.parse(ctx, t.Source)
	if err != nil {
		return err
	}

	for i, res := range results {
		header(s.Stdout, res.name, i, len(results))

		for j, tok := range res.Tokens {
			fmt.Fprintf(s.Stdout, "%d: %s = %q (line %d, col %d)\n",
				j, tok.Kind, tok.Text, tok.Pos.Line, tok.Pos.Column)
		}
	}

	return nil
}
