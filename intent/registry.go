package intent

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/plx/lang"
)

var (
	ErrInvalidIntent   = lang.NewError("invalid intent")
	ErrDuplicateIntent = lang.NewError("intent already registered")
)

// Registry is an open catalogue of intents and their renderers.
//
// Entries are only ever added. Register installs an entry in a single step
// under the write lock, so a concurrent Lookup never sees a partial entry.
type Registry struct {
	mu        sync.RWMutex
	entries   []*entry
	byName    map[string]*entry
	byCommand map[string]*entry
}

type entry struct {
	intent     Intent
	normalized string
	renderers  Renderers
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*entry),
		byCommand: make(map[string]*entry),
	}
}

// Default returns a new registry holding the builtin catalogue.
func Default() *Registry {
	r := NewRegistry()

	for _, in := range builtins {
		if err := r.Register(in, builtinRenderers(in.Name)); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds an intent and its renderers. It fails if the name or the
// command is empty or already registered.
func (r *Registry) Register(in Intent, renderers Renderers) error {
	if in.Name == "" || in.Command == "" {
		return ErrInvalidIntent.With(
			slog.String("name", in.Name),
			slog.String("command", in.Command),
		)
	}

	e := &entry{
		intent:     in.clone(),
		normalized: normalize(in.Command),
		renderers:  make(Renderers, len(renderers)),
	}

	for b, fn := range renderers {
		if fn != nil {
			e.renderers[b] = fn
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[in.Name]; ok {
		return ErrDuplicateIntent.With(slog.String("name", in.Name))
	}

	if _, ok := r.byCommand[in.Command]; ok {
		return ErrDuplicateIntent.With(slog.String("command", in.Command))
	}

	r.entries = append(r.entries, e)
	r.byName[in.Name] = e
	r.byCommand[in.Command] = e

	return nil
}

// Lookup returns the intent bound to command. An exact spelling wins;
// otherwise the earliest registered intent whose command matches after
// dropping '~' and '!' and ignoring case.
func (r *Registry) Lookup(command string) (Intent, bool) {
	e, ok := r.lookup(command)
	if !ok {
		return Intent{}, false
	}

	return e.intent.clone(), true
}

func (r *Registry) lookup(command string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byCommand[command]; ok {
		return e, true
	}

	norm := normalize(command)
	for _, e := range r.entries {
		if e.normalized == norm {
			return e, true
		}
	}

	return nil, false
}

// Intent returns the intent registered under name.
func (r *Registry) Intent(name string) (Intent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return Intent{}, false
	}

	return e.intent.clone(), true
}

// Renderer returns the render function of the named intent for backend b.
func (r *Registry) Renderer(name string, b Backend) (RenderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	fn, ok := e.renderers[b]

	return fn, ok
}

// Backends returns the backends the named intent can be rendered into, in
// the order of [Backends].
func (r *Registry) Backends(name string) []Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return nil
	}

	keys := slices.Collect(maps.Keys(e.renderers))

	return slices.DeleteFunc(Backends(), func(b Backend) bool {
		return !slices.Contains(keys, b)
	})
}

// Intents returns every registered intent in registration order.
func (r *Registry) Intents() []Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Intent, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.intent.clone()
	}

	return out
}

// Commands returns the command spelling of every registered intent in
// registration order.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.intent.Command
	}

	return out
}

// Find returns the intents whose name, command, or description fuzzy-match
// query, best match first. An empty query returns every intent.
func (r *Registry) Find(query string) []Intent {
	all := r.Intents()
	if strings.TrimSpace(query) == "" {
		return all
	}

	matches := fuzzy.FindFrom(query, intentSource(all))

	out := make([]Intent, len(matches))
	for i, m := range matches {
		out[i] = all[m.Index]
	}

	return out
}

// intentSource adapts a slice of intents to [fuzzy.Source].
type intentSource []Intent

func (s intentSource) String(i int) string {
	return s[i].Name + " " + s[i].Command + " " + s[i].Description
}

func (s intentSource) Len() int { return len(s) }

func normalize(command string) string {
	return strings.ToLower(strings.NewReplacer("~", "", "!", "").Replace(command))
}
