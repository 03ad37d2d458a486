// Package repair is the primary facade for repairing utility-class strings
// whose hyphens gained stray surrounding whitespace (e.g. "px - 2" instead
// of "px-2").
package repair

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/core/domain"
	corerepair "github.com/utilfix/go_class_repair/internal/core/repair"
	"github.com/utilfix/go_class_repair/internal/core/rules"
	"github.com/utilfix/go_class_repair/internal/ports"
	"github.com/utilfix/go_class_repair/internal/warmup"
)

// ClassRepair applies the ordered rule catalog to text.
type ClassRepair struct {
	repairer ports.Repairer
	logger   ports.Logger
	warmed   bool
}

// Option defines a functional option for configuring ClassRepair.
type Option func(*config)

type config struct {
	ScopedFallback bool
	Catalog        rules.Catalog
	Logger         ports.Logger
	WarmUp         bool
	WarmUpConfig   warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithCatalog sets a custom rule catalog. Rules are applied in declaration
// order; the catalog is compiled and validated when the instance is created.
func WithCatalog(catalog rules.Catalog) Option {
	return func(cfg *config) {
		cfg.Catalog = catalog
	}
}

// WithScopedFallback confines the generic fallback rules to recognized
// class-attribute regions, so hyphens in surrounding prose are never joined.
func WithScopedFallback() Option {
	return func(cfg *config) {
		cfg.ScopedFallback = true
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new ClassRepair instance. Without options it uses the
// default catalog, an unscoped fallback, and a default logger.
func New(opts ...Option) (*ClassRepair, error) {
	cfg := &config{
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Catalog == nil {
		cfg.Catalog = rules.DefaultCatalog()
	}

	engineCfg := corerepair.Config{
		ScopedFallback: cfg.ScopedFallback,
	}
	engine, err := corerepair.NewEngine(engineCfg, cfg.Logger, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	cr := &ClassRepair{
		repairer: engine,
		logger:   cfg.Logger,
	}

	if cfg.WarmUp {
		cr.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return cr, nil
}

// Repair applies the full ordered catalog to text and reports whether the
// output differs from the input.
func (cr *ClassRepair) Repair(ctx context.Context, text string) domain.Result {
	return cr.repairer.Repair(ctx, text)
}

// WarmUp pre-exercises the engine to optimize first-request latency.
func (cr *ClassRepair) WarmUp(ctx context.Context, wc warmup.WarmupConfig) {
	if cr.warmed {
		cr.logger.Debug("Already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(cr.logger, wc)
	mgr.RegisterRepairer(cr.repairer)
	mgr.WarmUp(ctx)
	cr.warmed = true
}
