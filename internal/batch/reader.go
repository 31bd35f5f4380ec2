// Package batch runs experiments for many prompts read from a JSONL file.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

// InputRecord is one parsed line of batch input. A malformed line carries
// Error instead of a request so the caller can report and keep going.
type InputRecord struct {
	Request    models.ExperimentRequest
	LineNumber int
	Error      error
}

// Reader streams experiment requests out of a JSONL source.
type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll emits one InputRecord per non-blank line until the source is
// drained or ctx is cancelled. Line numbers count blank lines too so they
// match the input file.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	ch := make(chan InputRecord)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			}

			select {
			case ch <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Input reader stopped early")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to scan input")
		}
	}()

	return ch
}
