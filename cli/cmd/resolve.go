package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/plx/intent"
)

// maxOutputPreview is the number of runes of rendered output shown per intent
// by resolve --detail.
const maxOutputPreview = 100

// Resolve parses each source and resolves its statements to intents with
// the session backend.
type Resolve struct {
	Detail bool   `help:"Print every resolved intent."                         short:"d"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Source []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source" type:"existingfile"`
}

// resolution is the structured output of resolve for one source.
type resolution struct {
	Source     string                  `json:"source"     yaml:"source"`
	Statements int                     `json:"statements" yaml:"statements"`
	Intents    []intent.ResolvedIntent `json:"intents"    yaml:"intents"`
}

// Run executes the resolve command. A source with parse errors is reported
// and skipped, and the command then fails once all sources are done.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	results, err := s.parse(ctx, r.Source)
	if err != nil {
		return err
	}

	var (
		failed []error
		out    []resolution
	)

	for _, res := range results {
		if rerr := s.report(res.name, res.Errors); rerr != nil {
			failed = append(failed, rerr)

			continue
		}

		resolved := s.resolver(ctx).ResolveAll(res.File.Statements)

		s.Logger.DebugContext(ctx, "resolved source",
			slog.String("file", res.name),
			slog.String("backend", s.Backend.String()),
			slog.Int("intents", len(resolved)),
		)

		out = append(out, resolution{
			Source:     res.name,
			Statements: len(res.File.Statements),
			Intents:    resolved,
		})
	}

	if r.Format != formatText {
		if err := encode(ctx, s.Stdout, r.Format, r.Indent, out); err != nil {
			return err
		}

		return errors.Join(failed...)
	}

	for i, res := range out {
		header(s.Stdout, res.Source, i, len(out))
		r.writeText(s.Stdout, res)
	}

	return errors.Join(failed...)
}

func (r *Resolve) writeText(w io.Writer, res resolution) {
	fmt.Fprintf(w, "\n✓ Parsed %d statements\n", res.Statements)
	fmt.Fprintf(w, "✓ Resolved %d intents\n", len(res.Intents))
	fmt.Fprint(w, "✓ 0 errors, 0 warnings\n\n")

	if len(res.Intents) == 0 && !r.Detail {
		return
	}

	fmt.Fprint(w, "=== RESOLVED INTENTS ===\n\n")
	fmt.Fprintln(w, "Commands:")

	for _, u := range usage(res.Intents) {
		fmt.Fprintf(w, "  %s → %s (%dx)\n", u.command, u.name, u.count)
	}

	if !r.Detail {
		return
	}

	fmt.Fprint(w, "\n=== DETAILED INTENTS ===\n\n")

	for i, ri := range res.Intents {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, ri.Intent.Name)
		fmt.Fprintf(w, "    Command: %s\n", ri.Intent.Command)
		fmt.Fprintf(w, "    Category: %s\n", ri.Intent.Category)
		fmt.Fprintf(w, "    Backend: %s\n", ri.Backend)
		fmt.Fprintf(w, "    Parameters: %s\n", flow(ri.Params))

		if ri.Output != "" {
			fmt.Fprintf(w, "    Output: %s\n", preview(ri.Output, maxOutputPreview))
		}
	}
}

// commandUsage counts the statements that resolved through one command.
type commandUsage struct {
	command string
	name    string
	count   int
}

// usage groups resolved intents by command in order of first appearance.
func usage(resolved []intent.ResolvedIntent) []commandUsage {
	var out []commandUsage

	index := make(map[string]int)

	for _, ri := range resolved {
		i, ok := index[ri.Intent.Command]
		if !ok {
			i = len(out)
			index[ri.Intent.Command] = i
			out = append(out, commandUsage{command: ri.Intent.Command, name: ri.Intent.Name})
		}

		out[i].count++
	}

	return out
}

// preview returns the first n runes of s, followed by "..." if s is longer.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n]) + "..."
}
