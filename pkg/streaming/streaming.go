// Package streaming repairs large inputs over io.Reader/io.Writer without
// holding the whole document in memory.
package streaming

import (
	"context"
	"io"

	"github.com/baditaflorin/l"

	"github.com/utilfix/go_class_repair/internal/adapters/logger"
	"github.com/utilfix/go_class_repair/internal/adapters/stream"
	"github.com/utilfix/go_class_repair/internal/core/repair"
	"github.com/utilfix/go_class_repair/internal/core/rules"
	"github.com/utilfix/go_class_repair/internal/ports"
)

// StreamingRepair repairs text streams line by line.
type StreamingRepair struct {
	processor ports.StreamRepairer
	logger    ports.Logger
}

// Option defines a functional option for configuring StreamingRepair.
type Option func(*config)

type config struct {
	ScopedFallback bool
	Catalog        rules.Catalog
	Logger         ports.Logger
	ChunkSize      int
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithCatalog sets a custom rule catalog.
func WithCatalog(catalog rules.Catalog) Option {
	return func(cfg *config) {
		cfg.Catalog = catalog
	}
}

// WithScopedFallback confines the generic fallback rules to recognized
// class-attribute regions.
func WithScopedFallback() Option {
	return func(cfg *config) {
		cfg.ScopedFallback = true
	}
}

// WithChunkSize sets the read chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(cfg *config) {
		cfg.ChunkSize = size
	}
}

// New creates a new StreamingRepair instance.
func New(opts ...Option) (*StreamingRepair, error) {
	cfg := &config{}
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

	engineCfg := repair.Config{
		ScopedFallback: cfg.ScopedFallback,
	}
	engine, err := repair.NewEngine(engineCfg, cfg.Logger, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	return &StreamingRepair{
		processor: stream.NewProcessor(cfg.Logger, engine, cfg.ChunkSize),
		logger:    cfg.Logger,
	}, nil
}

// RepairStream repairs reader's content line by line and writes the repaired
// text to writer.
func (sr *StreamingRepair) RepairStream(ctx context.Context, reader io.Reader, writer io.Writer) (ports.StreamResult, error) {
	return sr.processor.RepairStream(ctx, reader, writer)
}
