package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/experiment"
	"github.com/promptlab/promptlab/internal/models"
)

// OutputRecord is one line of batch output: the completed experiment, or
// the error that stopped it, keyed back to the input line.
type OutputRecord struct {
	Line       int                      `json:"line"`
	Experiment *models.ExperimentRecord `json:"experiment,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// Processor fans input records out to a pool of experiment workers.
// Experiments are independent, so running them concurrently is safe; only
// the per-experiment generation stays sequential.
type Processor struct {
	service *experiment.Service
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(service *experiment.Service, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		service: service,
		workers: workers,
		logger:  logger,
	}
}

// Process runs every record through the service. Results arrive in
// completion order, not input order; each carries its input line number.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan OutputRecord {
	jobs := make(chan InputRecord)
	results := make(chan OutputRecord)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				select {
				case results <- p.processOne(ctx, record):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	if record.Error != nil {
		return OutputRecord{Line: record.LineNumber, Error: record.Error.Error()}
	}

	request := record.Request
	// An omitted range means "use the defaults", same as the HTTP API.
	if request.ParameterRange == (models.ParameterRange{}) {
		request.ParameterRange = models.DefaultParameterRange()
	}

	experimentRecord, err := p.service.RunExperiment(ctx, request)
	if err != nil {
		p.logger.Error().
			Int("line", record.LineNumber).
			Err(err).
			Msg("Experiment failed")
		return OutputRecord{Line: record.LineNumber, Error: err.Error()}
	}

	return OutputRecord{Line: record.LineNumber, Experiment: experimentRecord}
}
