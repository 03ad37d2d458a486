package repair

import (
	"context"
	"testing"

	"github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/core/rules"
)

func newTestEngine(t *testing.T, cfg Config, catalog rules.Catalog) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, logger.NewNopLogger(), catalog)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestRepairWithDefaultCatalog(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), rules.DefaultCatalog())

	result := engine.Repair(context.Background(), `className="px - 2 py - 1.5 rounded - lg"`)
	if result.Output != `className="px-2 py-1.5 rounded-lg"` {
		t.Errorf("unexpected output: %q", result.Output)
	}
	if !result.Changed {
		t.Error("expected changed = true")
	}
	if result.Replacements != 3 {
		t.Errorf("expected 3 replacements, got %d", result.Replacements)
	}
	if result.OriginalSize != len(`className="px - 2 py - 1.5 rounded - lg"`) {
		t.Errorf("wrong original size: %d", result.OriginalSize)
	}
	if result.RepairedSize != len(result.Output) {
		t.Errorf("wrong repaired size: %d", result.RepairedSize)
	}
}

func TestRepairNoOpPreservesInput(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), rules.DefaultCatalog())

	in := `className="px-2 py-1.5 rounded-lg"`
	result := engine.Repair(context.Background(), in)
	if result.Output != in {
		t.Errorf("clean input was altered: %q", result.Output)
	}
	if result.Changed {
		t.Error("expected changed = false for clean input")
	}
	if result.Replacements != 0 {
		t.Errorf("expected 0 replacements, got %d", result.Replacements)
	}
}

func TestChangedUsesContentEqualityNotLength(t *testing.T) {
	// An equal-length substitution must still report a change. A length
	// comparison would miss it.
	catalog := rules.Catalog{
		{Pattern: `ab`, Replacement: `ba`},
	}
	engine := newTestEngine(t, DefaultConfig(), catalog)

	result := engine.Repair(context.Background(), "ab")
	if result.Output != "ba" {
		t.Fatalf("unexpected output: %q", result.Output)
	}
	if result.OriginalSize != result.RepairedSize {
		t.Fatal("test requires an equal-length substitution")
	}
	if !result.Changed {
		t.Error("equal-length substitution must report changed = true")
	}
}

func TestRepairHonorsCancelledContext(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), rules.DefaultCatalog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "px - 2"
	result := engine.Repair(ctx, in)
	if result.Output != in {
		t.Errorf("cancelled repair must return the input unchanged, got %q", result.Output)
	}
	if result.Changed {
		t.Error("cancelled repair must not report a change")
	}
	if result.Details["error"] == nil {
		t.Error("cancelled repair should record an error detail")
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), rules.DefaultCatalog())

	in := `<span className="bg - gradient - to - br text - slate - 400 border - white / 10 foo - bar - baz">a - b prose</span>`
	once := engine.Repair(context.Background(), in)
	twice := engine.Repair(context.Background(), once.Output)

	if twice.Output != once.Output {
		t.Errorf("second pass altered output:\n once:  %q\n twice: %q", once.Output, twice.Output)
	}
	if twice.Changed {
		t.Error("second pass must report changed = false")
	}
}

func TestNewEngineRejectsBadCatalog(t *testing.T) {
	catalog := rules.Catalog{
		{Pattern: `(`, Replacement: `x`},
	}
	if _, err := NewEngine(DefaultConfig(), logger.NewNopLogger(), catalog); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}
