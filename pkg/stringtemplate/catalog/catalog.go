// Package catalog keeps compiled templates by name and renders them with
// logging, metrics and tracing.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate"
	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/observability"
	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/store"
	"go.opentelemetry.io/otel/attribute"
)

// ErrTemplateNotFound indicates no template is registered under a name.
var ErrTemplateNotFound = errors.New("template not registered")

// RenderError wraps a render failure with the template name.
type RenderError struct {
	// Template is the name of the template being rendered.
	Template string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Template, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Catalog is a thread-safe set of named compiled templates.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*stringtemplate.Template
	cfg     catalogConfig
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	cfg := defaultCatalogConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Catalog{
		entries: make(map[string]*stringtemplate.Template),
		cfg:     cfg,
	}
}

// compile builds a template and reports it to the configured observers.
func (c *Catalog) compile(name, source string) *stringtemplate.Template {
	t := stringtemplate.New(source)
	vars, nodes := len(t.Variables()), len(t.Nodes())
	observability.LogCompile(c.cfg.logger, name, vars, nodes)
	c.cfg.metrics.RecordCompile(context.Background(), name, vars, nodes)
	return t
}

// Register compiles source and stores it under name, replacing any
// previous template of that name.
func (c *Catalog) Register(name, source string) *stringtemplate.Template {
	t := c.compile(name, source)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = t
	return t
}

// RegisterMany compiles and stores every name to source pair.
func (c *Catalog) RegisterMany(sources map[string]string) {
	compiled := make(map[string]*stringtemplate.Template, len(sources))
	for name, source := range sources {
		compiled[name] = c.compile(name, source)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for name, t := range compiled {
		c.entries[name] = t
	}
}

// Get returns the template registered under name.
func (c *Catalog) Get(name string) (*stringtemplate.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[name]
	return t, ok
}

// MustGet returns the template registered under name, panicking if not found.
func (c *Catalog) MustGet(name string) *stringtemplate.Template {
	t, ok := c.Get(name)
	if !ok {
		panic(fmt.Sprintf("catalog: template %q not registered", name))
	}
	return t
}

// Has returns true if a template is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Delete removes the template registered under name.
func (c *Catalog) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrCompile returns the template registered under name, compiling and
// registering source if there is none. Source is compiled at most once per
// name, even under concurrent access.
func (c *Catalog) GetOrCompile(name, source string) *stringtemplate.Template {
	c.mu.RLock()
	t, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries[name]; ok {
		return t
	}
	t = c.compile(name, source)
	c.entries[name] = t
	return t
}

// Render substitutes m into the template registered under name.
//
// Failures are returned as *RenderError wrapping ErrTemplateNotFound or the
// substitution error, so errors.Is(err, stringtemplate.ErrMissingMapping)
// works on the result.
func (c *Catalog) Render(ctx context.Context, name string, m stringtemplate.Mapping) (out string, err error) {
	start := time.Now()

	ctx, span := c.cfg.spans.StartRenderSpan(ctx, name)
	defer func() {
		c.cfg.spans.EndSpanWithError(span, err)
	}()

	defer func() {
		elapsed := time.Since(start)
		c.cfg.metrics.RecordRender(ctx, name, elapsed, err)
		if err != nil {
			observability.LogRenderError(c.cfg.logger, name, err)
		} else {
			observability.LogRenderComplete(c.cfg.logger, name, float64(elapsed.Microseconds())/1000, len(out))
		}
	}()

	t, ok := c.Get(name)
	if !ok {
		return "", &RenderError{Template: name, Err: ErrTemplateNotFound}
	}

	out, err = t.Substitute(m)
	if err != nil {
		return "", &RenderError{Template: name, Err: err}
	}

	c.cfg.spans.AddSpanEvent(ctx, "substituted",
		attribute.Int("variables", len(t.Variables())),
		attribute.Int("output_bytes", len(out)),
	)
	return out, nil
}

// Save writes the source of every registered template to s.
func (c *Catalog) Save(s store.Store) error {
	for _, name := range c.Names() {
		t, ok := c.Get(name)
		if !ok {
			continue
		}
		if err := s.Save(name, t.Source()); err != nil {
			observability.LogStoreError(c.cfg.logger, name, "save", err)
			return fmt.Errorf("save template %s: %w", name, err)
		}
	}
	return nil
}

// Load compiles and registers every template held by s.
// Returns the number of templates loaded.
func (c *Catalog) Load(s store.Store) (int, error) {
	done := observability.TimedOperation()

	infos, err := s.List()
	if err != nil {
		observability.LogStoreError(c.cfg.logger, "", "list", err)
		return 0, fmt.Errorf("list templates: %w", err)
	}

	sources := make(map[string]string, len(infos))
	for _, info := range infos {
		e, err := s.Load(info.Name)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between List and Load.
			continue
		}
		if err != nil {
			observability.LogStoreError(c.cfg.logger, info.Name, "load", err)
			return 0, fmt.Errorf("load template %s: %w", info.Name, err)
		}
		sources[e.Name] = e.Source
	}

	c.RegisterMany(sources)
	observability.LogStoreLoad(c.cfg.logger, len(sources), done())
	return len(sources), nil
}
