// class_repair.go
// Package classrepair repairs a specific class of textual corruption: stray
// spaces inserted around the hyphens of utility-class tokens, e.g. "px - 2"
// instead of "px-2", and around fraction/opacity slashes, e.g.
// "border-white / 10" instead of "border-white/10".
//
// The repair is a pure in-memory transformation: an ordered catalog of
// (pattern, replacement) rules is applied sequentially, each rule operating
// on the cumulative output of the rules before it. Literal and family rules
// run before the generic fallbacks so multi-segment tokens are never
// partially collapsed. Applying the catalog twice produces the same output
// as applying it once.
//
// This package is the convenience surface; pkg/repair and pkg/streaming
// expose the configurable facades.
package classrepair

import (
	"context"
	"sync"

	"github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/core/domain"
	"github.com/utilfix/go_class_repair/internal/core/repair"
	"github.com/utilfix/go_class_repair/internal/core/rules"
)

var (
	defaultOnce     sync.Once
	defaultRepairer *repair.Engine
	defaultInitErr  error
)

// Normalize applies the given ordered rule catalog to text. It returns the
// transformed text and whether the output differs from the input by content
// equality. A malformed pattern in the catalog is reported as an error; an
// unmatched pattern is simply a no-op.
func Normalize(text string, catalog rules.Catalog) (string, bool, error) {
	if err := catalog.Compile(); err != nil {
		return text, false, err
	}
	out, _ := catalog.Apply(text)
	return out, out != text, nil
}

// RepairWithDefaults repairs text using the default rule catalog and default
// configuration. It panics if the default logger cannot be created.
func RepairWithDefaults(text string) domain.Result {
	defaultOnce.Do(func() {
		lg, err := createDefaultLogger()
		if err != nil {
			defaultInitErr = err
			return
		}
		defaultRepairer, defaultInitErr = repair.NewEngine(
			repair.DefaultConfig(),
			logger.FromExisting(lg),
			rules.DefaultCatalog(),
		)
	})
	if defaultInitErr != nil {
		panic(defaultInitErr)
	}
	return defaultRepairer.Repair(context.Background(), text)
}
