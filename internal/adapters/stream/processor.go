// Package stream implements line-wise repair of text streams. Processing by
// line is sound because no catalog pattern spans a newline, and it bounds
// memory for inputs too large to hold comfortably in one buffer.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/utilfix/go_class_repair/internal/pool"
	"github.com/utilfix/go_class_repair/internal/ports"
)

// DefaultChunkSize defines the default size of each read chunk.
const DefaultChunkSize = 64 * 1024 // 64KB

// Processor reads a stream in chunks, repairs it line by line, and writes
// the repaired text to the output writer.
type Processor struct {
	logger   ports.Logger
	repairer ports.Repairer

	chunkPool *pool.BufferPool
	linePool  *pool.BufferPool
	chunkSize int
}

// NewProcessor creates a new stream processor. A chunkSize of zero or less
// selects the default.
func NewProcessor(logger ports.Logger, repairer ports.Repairer, chunkSize int) *Processor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Processor{
		logger:    logger,
		repairer:  repairer,
		chunkPool: pool.NewBufferPool(chunkSize),
		linePool:  pool.NewBufferPool(4096),
		chunkSize: chunkSize,
	}
}

// RepairStream repairs reader's content line by line and writes the result
// to writer. Line delimiters are preserved; a final line without a trailing
// newline stays without one.
func (p *Processor) RepairStream(ctx context.Context, reader io.Reader, writer io.Writer) (ports.StreamResult, error) {
	startTime := time.Now()

	chunk := p.chunkPool.Get()
	defer p.chunkPool.Put(chunk)
	line := p.linePool.Get()
	defer p.linePool.Put(line)

	if cap(*chunk) < p.chunkSize {
		*chunk = make([]byte, 0, p.chunkSize)
	}
	buf := (*chunk)[:p.chunkSize]

	var res ports.StreamResult
	bw := bufio.NewWriter(writer)

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			res.BytesProcessed += int64(n)
			data := buf[:n]
			for {
				idx := bytes.IndexByte(data, '\n')
				if idx < 0 {
					*line = append(*line, data...)
					break
				}
				*line = append(*line, data[:idx+1]...)
				if werr := p.repairLine(ctx, bw, line, &res); werr != nil {
					return res, werr
				}
				data = data[idx+1:]
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read stream: %w", err)
		}
	}

	// Final line without a trailing newline.
	if len(*line) > 0 {
		if werr := p.repairLine(ctx, bw, line, &res); werr != nil {
			return res, werr
		}
	}

	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("flush output: %w", err)
	}

	res.ProcessingTime = time.Since(startTime)

	p.logger.Debug("Completed stream repair",
		"lines", res.LinesProcessed,
		"bytes", res.BytesProcessed,
		"replacements", res.Replacements,
		"changed", res.Changed,
		"duration", res.ProcessingTime,
	)

	return res, nil
}

// repairLine repairs one buffered line, writes it out, and resets the buffer.
func (p *Processor) repairLine(ctx context.Context, bw *bufio.Writer, line *[]byte, res *ports.StreamResult) error {
	result := p.repairer.Repair(ctx, string(*line))
	if result.Changed {
		res.Changed = true
	}
	res.Replacements += result.Replacements
	res.LinesProcessed++

	if _, err := bw.WriteString(result.Output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	*line = (*line)[:0]
	return nil
}
