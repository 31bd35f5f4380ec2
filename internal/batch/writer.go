package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
)

var csvHeader = []string{
	"line",
	"experiment_id",
	"prompt",
	"model_id",
	"run_count",
	"attempted",
	"produced",
	"coherence",
	"completeness",
	"readability",
	"relevance",
	"overall",
	"error",
}

// Writer serializes output records. JSONL carries the full experiment
// records; CSV is one summary row per experiment.
type Writer struct {
	format string
	logger *zerolog.Logger

	encoder     *json.Encoder
	csv         *csv.Writer
	wroteHeader bool
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL:
		return &Writer{format: format, encoder: json.NewEncoder(out), logger: logger}, nil
	case FormatCSV:
		return &Writer{format: format, csv: csv.NewWriter(out), logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

func (w *Writer) Write(record OutputRecord) error {
	if w.format == FormatJSONL {
		return w.encoder.Encode(record)
	}
	return w.writeCSVRow(record)
}

func (w *Writer) writeCSVRow(record OutputRecord) error {
	if !w.wroteHeader {
		if err := w.csv.Write(csvHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}

	line := strconv.Itoa(record.Line)
	if record.Error != "" {
		return w.csv.Write([]string{line, "", "", "", "", "", "", "", "", "", "", "", record.Error})
	}

	exp := record.Experiment
	avg := exp.Summary.Average
	return w.csv.Write([]string{
		line,
		exp.ID,
		exp.Prompt,
		exp.ModelID,
		strconv.Itoa(exp.RunCount),
		strconv.Itoa(exp.Summary.Attempted),
		strconv.Itoa(exp.Summary.Produced),
		formatScore(avg.Coherence),
		formatScore(avg.Completeness),
		formatScore(avg.Readability),
		formatScore(avg.Relevance),
		formatScore(avg.OverallScore),
		"",
	})
}

// Close flushes buffered output. Callers must check it for CSV, the csv
// writer reports write errors on flush.
func (w *Writer) Close() error {
	if w.csv != nil {
		w.csv.Flush()
		return w.csv.Error()
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
