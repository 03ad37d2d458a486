package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/adapters/stream"
	"github.com/utilfix/go_class_repair/internal/core/repair"
	"github.com/utilfix/go_class_repair/internal/core/rules"
)

// generateCorrupted creates a document of roughly the specified size built
// from corrupted utility-class markup.
func generateCorrupted(size int) string {
	if size <= 0 {
		return ""
	}

	sample := `<div className="px - 2 py - 1.5 rounded - lg bg - gradient - to - br text - slate - 400 border - white / 10 items - center justify - between">` + "\n"
	var sb strings.Builder
	sb.Grow(size)

	for sb.Len() < size {
		sb.WriteString(sample)
	}
	return sb.String()
}

// generateClean creates a document that matches no rule, exercising the
// no-op path.
func generateClean(size int) string {
	if size <= 0 {
		return ""
	}

	sample := `<div className="px-2 py-1.5 rounded-lg bg-gradient-to-br text-slate-400 border-white/10 items-center justify-between">` + "\n"
	var sb strings.Builder
	sb.Grow(size)

	for sb.Len() < size {
		sb.WriteString(sample)
	}
	return sb.String()
}

func newEngine(b *testing.B, cfg repair.Config) *repair.Engine {
	b.Helper()
	engine, err := repair.NewEngine(cfg, logger.NewNopLogger(), rules.DefaultCatalog())
	if err != nil {
		b.Fatal(err)
	}
	return engine
}

func BenchmarkRepairCorrupted(b *testing.B) {
	for _, size := range []int{1024, 64 * 1024, 1024 * 1024} {
		b.Run(byteSizeName(size), func(b *testing.B) {
			engine := newEngine(b, repair.DefaultConfig())
			text := generateCorrupted(size)
			b.SetBytes(int64(len(text)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = engine.Repair(context.Background(), text)
			}
		})
	}
}

func BenchmarkRepairClean(b *testing.B) {
	for _, size := range []int{1024, 64 * 1024, 1024 * 1024} {
		b.Run(byteSizeName(size), func(b *testing.B) {
			engine := newEngine(b, repair.DefaultConfig())
			text := generateClean(size)
			b.SetBytes(int64(len(text)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = engine.Repair(context.Background(), text)
			}
		})
	}
}

func BenchmarkRepairScoped(b *testing.B) {
	engine := newEngine(b, repair.Config{ScopedFallback: true})
	text := generateCorrupted(64 * 1024)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = engine.Repair(context.Background(), text)
	}
}

func BenchmarkRepairStream(b *testing.B) {
	nop := logger.NewNopLogger()
	engine := newEngine(b, repair.DefaultConfig())
	processor := stream.NewProcessor(nop, engine, 0)
	text := generateCorrupted(1024 * 1024)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := processor.RepairStream(context.Background(), strings.NewReader(text), io.Discard)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func byteSizeName(size int) string {
	switch {
	case size >= 1024*1024:
		return "1MB"
	case size >= 64*1024:
		return "64KB"
	default:
		return "1KB"
	}
}
