// Package rewrite applies the repair engine to files on disk. The transform
// happens entirely in memory; the target is overwritten only when the content
// actually changed, so an untouched file keeps its mtime and never trips
// downstream watchers.
package rewrite

import (
	"context"
	"fmt"
	"os"

	"github.com/utilfix/go_class_repair/internal/ports"
)

// FileResult reports the outcome of repairing one file.
type FileResult struct {
	Path         string
	Changed      bool
	Written      bool
	Replacements int
	OriginalSize int
	RepairedSize int
}

// Rewriter repairs files in place.
type Rewriter struct {
	repairer ports.Repairer
	logger   ports.Logger
	dryRun   bool
}

// NewRewriter creates a file rewriter. With dryRun set, files are never
// written; the result still reports what would change.
func NewRewriter(repairer ports.Repairer, logger ports.Logger, dryRun bool) *Rewriter {
	return &Rewriter{
		repairer: repairer,
		logger:   logger,
		dryRun:   dryRun,
	}
}

// RepairFile reads path in full, repairs it, and writes it back when the
// content changed. A read or write failure aborts without any partial write.
func (rw *Rewriter) RepairFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	result := rw.repairer.Repair(ctx, string(data))
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Changed = result.Changed
	res.Replacements = result.Replacements
	res.OriginalSize = result.OriginalSize
	res.RepairedSize = result.RepairedSize

	if !result.Changed {
		rw.logger.Info("No changes needed",
			"path", path,
			"size", res.OriginalSize,
		)
		return res, nil
	}

	if rw.dryRun {
		rw.logger.Info("Would repair file (dry run)",
			"path", path,
			"replacements", res.Replacements,
			"original_size", res.OriginalSize,
			"repaired_size", res.RepairedSize,
		)
		return res, nil
	}

	if err := os.WriteFile(path, []byte(result.Output), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	res.Written = true

	rw.logger.Info("Repaired file",
		"path", path,
		"replacements", res.Replacements,
		"original_size", res.OriginalSize,
		"repaired_size", res.RepairedSize,
	)
	return res, nil
}

// RepairFiles repairs each path in order, stopping at the first error.
func (rw *Rewriter) RepairFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		res, err := rw.RepairFile(ctx, path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
