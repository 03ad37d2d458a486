// Package repair implements the core text repair engine. It applies an
// ordered rule catalog to an in-memory text buffer and reports whether the
// content changed. The engine is pure: it never touches the filesystem.
package repair

import (
	"context"

	"github.com/utilfix/go_class_repair/internal/core/domain"
	"github.com/utilfix/go_class_repair/internal/core/rules"
	"github.com/utilfix/go_class_repair/internal/ports"
)

// Config holds configuration for the repair engine.
type Config struct {
	// ScopedFallback confines the generic fallback rules to recognized
	// attribute-value regions (class="...", className="...", className={`...`})
	// so prose hyphens outside markup are never joined. Literal and family
	// rules always run over the whole text.
	ScopedFallback bool
}

// DefaultConfig returns a default engine configuration.
func DefaultConfig() Config {
	return Config{
		ScopedFallback: false,
	}
}

// Engine applies a rule catalog to text.
type Engine struct {
	config  Config
	logger  ports.Logger
	catalog rules.Catalog
}

// NewEngine creates a repair engine. The catalog is compiled here so that a
// malformed pattern fails construction instead of a repair pass.
func NewEngine(config Config, logger ports.Logger, catalog rules.Catalog) (*Engine, error) {
	if err := catalog.Compile(); err != nil {
		return nil, err
	}
	return &Engine{
		config:  config,
		logger:  logger,
		catalog: catalog,
	}, nil
}

// Repair applies the full ordered catalog to text. Every rule operates on
// the cumulative output of the rules before it. The returned Changed flag is
// computed by content equality: a substitution that preserves length must
// still report a change.
func (e *Engine) Repair(ctx context.Context, text string) domain.Result {
	e.logger.Debug("Starting repair pass",
		"input_size", len(text),
		"scoped_fallback", e.config.ScopedFallback,
	)

	details := make(map[string]interface{})

	out, specific := e.catalog.ApplySpecific(text)

	// Check for context cancellation between the two rule passes.
	select {
	case <-ctx.Done():
		e.logger.Error("Repair cancelled", "error", ctx.Err())
		details["error"] = "repair cancelled"
		return domain.Result{
			Name:         "class_repair",
			Output:       text,
			Changed:      false,
			OriginalSize: len(text),
			RepairedSize: len(text),
			Details:      details,
		}
	default:
	}

	var generic int
	if e.config.ScopedFallback {
		out, generic = applyScopedFallback(e.catalog, out)
	} else {
		out, generic = e.catalog.ApplyGeneric(out)
	}

	changed := out != text

	details["specific_replacements"] = specific
	details["generic_replacements"] = generic

	e.logger.Debug("Completed repair pass",
		"changed", changed,
		"replacements", specific+generic,
		"input_size", len(text),
		"output_size", len(out),
	)

	return domain.Result{
		Name:         "class_repair",
		Output:       out,
		Changed:      changed,
		Replacements: specific + generic,
		OriginalSize: len(text),
		RepairedSize: len(out),
		Details:      details,
	}
}
