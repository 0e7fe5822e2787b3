package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/plx/cli/cmd/repl"
)

// REPL starts an interactive session over the session registry.
type REPL struct {
	NoHistory bool `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *REPL) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	var history string

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			history = filepath.Join(dir, repl.HistoryFile)
		}
	}

	return repl.Run(ctx, repl.Config{
		Registry:    s.Registry,
		Store:       s.Store,
		Backend:     s.Backend,
		HistoryPath: history,
		Logger:      s.Logger,
	})
}
