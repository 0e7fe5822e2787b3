package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/plx/intent"
)

// Intents lists the intent catalogue.
type Intents struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Query string `arg:"" help:"Fuzzy filter over intent names, commands and descriptions." name:"query" optional:""`
}

// Run executes the intents command.
func (c *Intents) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)
	found := s.Registry.Find(c.Query)

	if c.Format != formatText {
		return encode(ctx, s.Stdout, c.Format, c.Indent, found)
	}

	if len(found) == 0 {
		fmt.Fprintf(s.Stdout, "no intents match %q\n", c.Query)

		return nil
	}

	fmt.Fprintln(s.Stdout, intentTable(s.Registry, found, s.Backend))

	return nil
}

// intentTable renders intents with the backends each can render to. The
// session backend is marked with an asterisk.
func intentTable(r *intent.Registry, intents []intent.Intent, current intent.Backend) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "COMMAND", "CATEGORY", "BACKENDS", "DESCRIPTION")

	for _, in := range intents {
		var backends []string

		for _, b := range r.Backends(in.Name) {
			name := b.String()
			if b == current {
				name += "*"
			}

			backends = append(backends, name)
		}

		t.Row(in.Name, in.Command, string(in.Category), strings.Join(backends, ","), in.Description)
	}

	return t.Render()
}
