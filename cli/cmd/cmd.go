package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/log"
	"github.com/ardnew/plx/pkgstore"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type sessionKey struct{}

// Session is the state shared by every command of one invocation: the
// selected backend, the intent registry, and the package store the
// registry's import intent is bound to.
type Session struct {
	Backend  intent.Backend
	Registry *intent.Registry
	Store    *pkgstore.Store
	Logger   log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSession returns a session rendering to backend. The package store starts
// from the known packages and is extended with each catalogue file.
func NewSession(
	ctx context.Context,
	backend intent.Backend,
	catalogue ...string,
) (*Session, error) {
	if backend == "" {
		backend = intent.Shell
	}

	logger := log.Default()

	store := pkgstore.New()
	store.SetLogger(logger)

	for _, path := range catalogue {
		if path == "" {
			continue
		}

		if err := loadCatalogue(store, path); err != nil {
			return nil, err
		}
	}

	registry := intent.Default()
	if err := pkgstore.Register(registry, store); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "session ready",
		slog.String("backend", backend.String()),
		slog.Int("intents", len(registry.Intents())),
		slog.Int("packages", len(store.All())),
	)

	return &Session{
		Backend:  backend,
		Registry: registry,
		Store:    store,
		Logger:   logger,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}, nil
}

func loadCatalogue(store *pkgstore.Store, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return ErrOpenFile.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	pkgs, err := pkgstore.LoadCatalogue(file)
	if err != nil {
		return ErrLoadCatalogue.With(slog.String("file", path)).Wrap(err)
	}

	for _, p := range pkgs {
		store.Add(p)
	}

	return nil
}

// WithSession returns a new context.Context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session stored in ctx, or a new shell session
// over the standard streams if there is none.
func sessionFrom(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil {
		return s
	}

	// Without catalogue files NewSession cannot fail.
	s, _ := NewSession(ctx, intent.Shell)

	return s
}

// resolver returns a resolver over the session registry and backend.
func (s *Session) resolver(ctx context.Context) *intent.Resolver {
	return intent.NewResolver(
		s.Registry,
		intent.Context{Backend: s.Backend},
		intent.WithLogger(s.Logger),
		intent.WithContext(ctx),
	)
}
