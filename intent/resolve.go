package intent

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/plx/lang"
	"github.com/ardnew/plx/log"
)

// Context selects how statements are resolved.
type Context struct {
	Backend Backend
}

// ResolvedIntent is the result of binding one statement to an intent.
//
// Output is the rendered text for Backend. Rendered is false when the
// intent has no renderer for Backend; Intent and Params are still set.
type ResolvedIntent struct {
	Intent   Intent        `json:"intent"           yaml:"intent"`
	Params   Params        `json:"params"           yaml:"params"`
	Backend  Backend       `json:"backend"          yaml:"backend"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
	Rendered bool          `json:"rendered"         yaml:"rendered"`
	Pos      lang.Position `json:"position"         yaml:"position"`
}

// Resolver binds statements to the intents of a registry.
type Resolver struct {
	registry *Registry
	context  Context
	logger   log.Logger
	ctx      context.Context
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger that receives resolver trace records.
func WithLogger(logger log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) ResolverOption {
	return func(r *Resolver) { r.ctx = ctx }
}

// NewResolver returns a resolver over registry. A nil registry uses
// [Default].
func NewResolver(registry *Registry, c Context, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = Default()
	}

	r := &Resolver{registry: registry, context: c, ctx: context.TODO()}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Context returns the resolution context.
func (r *Resolver) Context() Context { return r.context }

// Resolve binds s to the intent its command names. It reports false if no
// intent matches.
func (r *Resolver) Resolve(s *lang.Statement) (ResolvedIntent, bool) {
	e, ok := r.registry.lookup(s.Command)
	if !ok {
		r.logger.TraceContext(r.ctx, "no intent",
			slog.String("command", s.Command),
			slog.Any("position", s.Pos))

		return ResolvedIntent{}, false
	}

	ri := ResolvedIntent{
		Intent:  e.intent.clone(),
		Params:  ExtractParams(s.Params),
		Backend: r.context.Backend,
		Pos:     s.Pos,
	}

	if fn, ok := e.renderers[r.context.Backend]; ok {
		ri.Output, ri.Rendered = fn(ri.Params), true
	}

	r.logger.TraceContext(r.ctx, "resolved",
		slog.String("command", s.Command),
		slog.String("intent", ri.Intent.Name),
		slog.String("backend", string(ri.Backend)),
		slog.Bool("rendered", ri.Rendered))

	return ri, true
}

// ResolveAll resolves stmts and all of their descendants in pre-order.
// Statements that match no intent are left out, but their children are
// still resolved.
func (r *Resolver) ResolveAll(stmts []*lang.Statement) []ResolvedIntent {
	var out []ResolvedIntent

	for _, stmt := range stmts {
		for s := range stmt.All() {
			if ri, ok := r.Resolve(s); ok {
				out = append(out, ri)
			}
		}
	}

	return out
}

// ExtractParams maps statement parameters to names. Named parameters keep
// their key. Positional parameters are named in order target, scope, arg2,
// arg3, and so on, where the number is the zero-based position among the
// positional parameters. A repeated name keeps the last value.
func ExtractParams(params []*lang.Param) Params {
	out := make(Params, len(params))
	n := 0

	for _, p := range params {
		v := Native(p.Value)

		if p.Key != "" {
			out[p.Key] = v

			continue
		}

		switch n {
		case 0:
			out["target"] = v
		case 1:
			out["scope"] = v
		default:
			out["arg"+strconv.Itoa(n)] = v
		}

		n++
	}

	return out
}

// Native converts a parameter value for rendering: strings stay strings,
// numbers become float64, references become their path, and lists become
// []any of their converted items.
func Native(v lang.Value) any {
	switch v := v.(type) {
	case *lang.String:
		return v.Text
	case *lang.Number:
		return v.Value
	case *lang.Reference:
		return v.Path
	case *lang.List:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = Native(item)
		}

		return items
	default:
		return nil
	}
}

// ResolveCommand resolves a one-line statement built from command and
// positional string parameters.
func (r *Resolver) ResolveCommand(command string, params ...string) (ResolvedIntent, bool) {
	s := &lang.Statement{Command: command, Pos: lang.Position{Line: 1, Column: 1}}

	for _, p := range params {
		s.Params = append(s.Params, &lang.Param{
			Value: &lang.String{Text: p, Pos: s.Pos},
			Pos:   s.Pos,
		})
	}

	return r.Resolve(s)
}
