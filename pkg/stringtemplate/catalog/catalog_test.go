package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate"
	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/observability"
	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	return json.NewEncoder(&h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *testLogHandler) WithGroup(string) slog.Handler      { return h }

func (h *testLogHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var msgs []string
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		var m map[string]any
		if len(line) > 0 && json.Unmarshal(line, &m) == nil {
			msgs = append(msgs, m["msg"].(string))
		}
	}
	return msgs
}

func TestNew(t *testing.T) {
	c := New()
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
}

func TestRegisterAndGet(t *testing.T) {
	c := New()

	registered := c.Register("greeting", "Hello ${name}")
	got, ok := c.Get("greeting")
	require.True(t, ok)
	assert.Same(t, registered, got)
	assert.Equal(t, "Hello ${name}", got.Source())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRegisterOverwrite(t *testing.T) {
	c := New()
	c.Register("t", "first")
	c.Register("t", "second")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "second", c.MustGet("t").Source())
}

func TestRegisterMany(t *testing.T) {
	c := New()
	c.RegisterMany(map[string]string{
		"b": "${x}",
		"a": "${y}",
		"c": "plain",
	})

	assert.Equal(t, []string{"a", "b", "c"}, c.Names())
	assert.True(t, c.Has("a"))
	assert.Equal(t, 3, c.Len())
}

func TestMustGet(t *testing.T) {
	c := New()
	c.Register("t", "x")

	assert.NotPanics(t, func() { c.MustGet("t") })
	assert.Panics(t, func() { c.MustGet("missing") })
}

func TestDelete(t *testing.T) {
	c := New()
	c.Register("t", "x")
	c.Delete("t")
	c.Delete("never-there")

	assert.False(t, c.Has("t"))
	assert.Equal(t, 0, c.Len())
}

func TestGetOrCompile(t *testing.T) {
	c := New()

	first := c.GetOrCompile("t", "${a}")
	second := c.GetOrCompile("t", "${b}")

	assert.Same(t, first, second)
	assert.Equal(t, []string{"a"}, second.Names())
}

func TestGetOrCompile_Concurrent(t *testing.T) {
	c := New()

	const numGoroutines = 50
	var wg sync.WaitGroup
	results := make([]*stringtemplate.Template, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetOrCompile("shared", "${v}")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestRender(t *testing.T) {
	c := New()
	c.Register("greeting", "Hello ${name^}!")
	ctx := context.Background()

	t.Run("renders registered template", func(t *testing.T) {
		out, err := c.Render(ctx, "greeting", stringtemplate.Strings(map[string]string{"name": "world"}))
		require.NoError(t, err)
		assert.Equal(t, "Hello World!", out)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := c.Render(ctx, "missing", nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound)

		var renderErr *RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "missing", renderErr.Template)
		assert.Equal(t, "render missing: template not registered", err.Error())
	})

	t.Run("missing mapping", func(t *testing.T) {
		out, err := c.Render(ctx, "greeting", stringtemplate.Mapping{})
		assert.Empty(t, out)
		assert.ErrorIs(t, err, stringtemplate.ErrMissingMapping)

		var missingErr *stringtemplate.MissingMappingError
		require.True(t, errors.As(err, &missingErr))
		assert.Equal(t, "name", missingErr.Name)
	})
}

func TestRender_Concurrent(t *testing.T) {
	c := New()
	c.Register("counter", "${n}")

	var calls atomic.Int64
	m := stringtemplate.Mapping{"n": stringtemplate.Func(func() string {
		calls.Add(1)
		return "x"
	})}

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := c.Render(context.Background(), "counter", m)
			assert.NoError(t, err)
			assert.Equal(t, "x", out)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(numGoroutines), calls.Load())
}

func TestRender_WithLogger(t *testing.T) {
	h := &testLogHandler{}
	c := New(WithLogger(slog.New(h)))

	c.Register("greeting", "Hi ${name}")
	_, err := c.Render(context.Background(), "greeting", stringtemplate.Strings(map[string]string{"name": "x"}))
	require.NoError(t, err)
	_, err = c.Render(context.Background(), "greeting", nil)
	require.Error(t, err)

	assert.Equal(t, []string{
		"template compiled",
		"template rendered",
		"template render failed",
	}, h.messages())
}

func TestRender_WithAllObservability(t *testing.T) {
	c := New(
		WithLogger(slog.New(&testLogHandler{})),
		WithMetrics(true),
		WithTracing(true),
	)
	c.Register("t", "${v,,}")

	out, err := c.Render(context.Background(), "t", stringtemplate.Strings(map[string]string{"v": "LOUD"}))
	require.NoError(t, err)
	assert.Equal(t, "loud", out)
}

func TestOptions_AreApplied(t *testing.T) {
	t.Run("defaults are no-op", func(t *testing.T) {
		cfg := defaultCatalogConfig()
		assert.Nil(t, cfg.logger)
		assert.False(t, cfg.metricsEnabled)
		assert.False(t, cfg.tracingEnabled)
		assert.IsType(t, observability.NoopMetrics{}, cfg.metrics)
		assert.IsType(t, observability.NoopSpanManager{}, cfg.spans)
	})

	t.Run("WithMetrics and WithTracing toggle recorders", func(t *testing.T) {
		cfg := defaultCatalogConfig()
		WithMetrics(true)(&cfg)
		WithTracing(true)(&cfg)
		assert.True(t, cfg.metricsEnabled)
		assert.True(t, cfg.tracingEnabled)
		assert.NotEqual(t, observability.NoopSpanManager{}, cfg.spans)

		WithMetrics(false)(&cfg)
		WithTracing(false)(&cfg)
		assert.IsType(t, observability.NoopMetrics{}, cfg.metrics)
		assert.IsType(t, observability.NoopSpanManager{}, cfg.spans)
	})
}

func TestSaveAndLoad(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	src := New()
	src.RegisterMany(map[string]string{
		"greeting": "Hello ${name^}",
		"farewell": "Bye ${name,,}",
	})
	require.NoError(t, src.Save(s))

	dst := New()
	n, err := dst.Load(s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"farewell", "greeting"}, dst.Names())

	out, err := dst.Render(context.Background(), "farewell", stringtemplate.Strings(map[string]string{"name": "ANN"}))
	require.NoError(t, err)
	assert.Equal(t, "Bye ann", out)
}

func TestSaveAndLoad_ClosedStore(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Close())

	c := New()
	c.Register("t", "x")

	assert.ErrorIs(t, c.Save(s), store.ErrStoreClosed)

	_, err := c.Load(s)
	assert.ErrorIs(t, err, store.ErrStoreClosed)
}
