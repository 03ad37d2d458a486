package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/utilfix/go_class_repair/internal/ports"
)

// WarmupConfig defines configuration for warming up the repair engines.
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  500,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles warmup of repair components before they serve traffic.
// Exercising the compiled catalog up front pulls the regexp machinery and
// pools into a steady state.
type Manager struct {
	logger    ports.Logger
	repairers []ports.Repairer
	streamers []ports.StreamRepairer
	config    WarmupConfig
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterRepairer adds a repairer to be warmed up.
func (wm *Manager) RegisterRepairer(r ports.Repairer) {
	wm.repairers = append(wm.repairers, r)
}

// RegisterStreamRepairer adds a stream repairer to be warmed up.
func (wm *Manager) RegisterStreamRepairer(s ports.StreamRepairer) {
	wm.streamers = append(wm.streamers, s)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting warmup",
		"components", len(wm.repairers)+len(wm.streamers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpRepairers(warmupCtx)
	wm.warmUpStreamRepairers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) warmUpRepairers(ctx context.Context) {
	if len(wm.repairers) == 0 {
		return
	}

	wm.logger.Debug("Warming up repairers", "count", len(wm.repairers))

	corrupted := sampleCorruptedText()
	clean := sampleCleanText()

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, repairer := range wm.repairers {
					// Alternate between text that matches rules and text
					// that takes the no-op path.
					if j%2 == 0 {
						_ = repairer.Repair(ctx, corrupted)
					} else {
						_ = repairer.Repair(ctx, clean)
					}
				}
			}
		}()
	}

	wg.Wait()
}

func (wm *Manager) warmUpStreamRepairers(ctx context.Context) {
	if len(wm.streamers) == 0 {
		return
	}

	wm.logger.Debug("Warming up stream repairers", "count", len(wm.streamers))

	corrupted := sampleCorruptedText()

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, streamer := range wm.streamers {
					reader := strings.NewReader(corrupted)
					_, _ = streamer.RepairStream(ctx, reader, discardWriter{})
				}
			}
		}()
	}

	wg.Wait()
}

// sampleCorruptedText returns a block of text exercising every rule class:
// multi-segment literals, family prefixes, generic fallbacks, and the slash
// separator.
func sampleCorruptedText() string {
	line := `<div className="px - 2 py - 1.5 bg - gradient - to - br text - slate - 400 border - white / 10 rounded - lg items - center">`
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// sampleCleanText returns already-repaired text for the no-op path.
func sampleCleanText() string {
	line := `<div className="px-2 py-1.5 bg-gradient-to-br text-slate-400 border-white/10 rounded-lg items-center">`
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// discardWriter swallows warmup output.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
