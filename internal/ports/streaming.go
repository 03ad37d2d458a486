package ports

import (
	"context"
	"io"
	"time"
)

// StreamRepairer defines the interface for repairing text streams.
type StreamRepairer interface {
	// RepairStream reads from reader, repairs line by line, and writes the
	// repaired text to writer.
	RepairStream(ctx context.Context, reader io.Reader, writer io.Writer) (StreamResult, error)
}

// StreamResult holds the outcome of a streaming repair pass.
type StreamResult struct {
	Changed        bool
	Replacements   int
	LinesProcessed int
	BytesProcessed int64
	ProcessingTime time.Duration
}
