// Package messages renders validation message templates. Messages use the
// pongo2 (Django-style) syntax, e.g. "at least {{ minlength }} characters".
package messages

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	globals map[string]any
	filters map[string]pongo2.FilterFunction
}

// WithGlobals seeds values available to every message.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilter registers an additional filter. Filters are process-wide in
// pongo2; a name that already exists is left untouched.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[name] = fn
	}
}

// Engine compiles and caches message templates.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	registerDefaultFilters()
	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("messages: register filter %q: %w", name, err)
		}
	}

	set := pongo2.NewSet("messages", pongo2.MustNewLocalFileSystemLoader(""))
	set.Globals = pongo2.Context{}
	set.Globals.Update(cfg.globals)

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes message with data. Plain strings without template tags are
// returned as-is. Output is not HTML-escaped.
func (e *Engine) Render(message string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("messages: engine is nil")
	}
	if !isTemplate(message) {
		return message, nil
	}

	tmpl, err := e.compile(message)
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{}
	for key, value := range data {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = value
		}
	}

	e.mu.RLock()
	out, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("messages: execute %q: %w", message, err)
	}
	return out, nil
}

func (e *Engine) compile(message string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[message]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[message]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromString("{% autoescape off %}" + message + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("messages: parse %q: %w", message, err)
	}
	e.templates[message] = tmpl
	return tmpl, nil
}

func isTemplate(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
