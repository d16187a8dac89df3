package benchmarks

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/catalog"
	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/store"
)

// BenchmarkCatalogRender measures a render through the catalog without observers.
func BenchmarkCatalogRender(b *testing.B) {
	c := catalog.New()
	c.Register("letter", letter)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Render(ctx, "letter", letterValues); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCatalogRender_Observed measures a render with metrics and tracing on.
func BenchmarkCatalogRender_Observed(b *testing.B) {
	c := catalog.New(catalog.WithMetrics(true), catalog.WithTracing(true))
	c.Register("letter", letter)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Render(ctx, "letter", letterValues); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkStoreSave compares store backends.
func BenchmarkStoreSave(b *testing.B) {
	b.Run("Memory", func(b *testing.B) {
		s := store.NewMemoryStore()
		defer s.Close()
		benchmarkSave(b, s)
	})

	b.Run("SQLite", func(b *testing.B) {
		s, err := store.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
		if err != nil {
			b.Fatal(err)
		}
		defer s.Close()
		benchmarkSave(b, s)
	})
}

func benchmarkSave(b *testing.B, s store.Store) {
	for i := 0; i < b.N; i++ {
		if err := s.Save("t"+strconv.Itoa(i%100), letter); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCatalogLoad measures loading 100 templates from SQLite.
func BenchmarkCatalogLoad(b *testing.B) {
	s, err := store.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()
	for i := 0; i < 100; i++ {
		if err := s.Save("t"+strconv.Itoa(i), letter); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := catalog.New().Load(s); err != nil {
			b.Fatal(err)
		}
	}
}
