// Package export renders a completed experiment for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/promptlab/promptlab/internal/models"
)

var csvHeader = []string{
	"run", "model_id", "source", "temperature", "top_p", "max_tokens",
	"tokens_used", "generation_time_ms",
	"coherence", "completeness", "readability", "relevance", "overall",
}

// CSV writes one row per generated result followed by an average row.
func CSV(w io.Writer, record models.ExperimentRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, scored := range record.Summary.Results {
		result := scored.Result
		metrics := scored.Metrics
		row := []string{
			strconv.Itoa(i + 1),
			result.ModelID,
			string(result.Source),
			formatScore(result.Parameters.Temperature),
			formatScore(result.Parameters.TopP),
			strconv.Itoa(result.Parameters.MaxTokens),
			strconv.Itoa(result.TokensUsed),
			strconv.FormatInt(result.GenerationTimeMs, 10),
			formatScore(metrics.Coherence),
			formatScore(metrics.Completeness),
			formatScore(metrics.Readability),
			formatScore(metrics.Relevance),
			formatScore(metrics.OverallScore),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	avg := record.Summary.Average
	averageRow := []string{
		"average", "", "", "", "", "", "", "",
		formatScore(avg.Coherence),
		formatScore(avg.Completeness),
		formatScore(avg.Readability),
		formatScore(avg.Relevance),
		formatScore(avg.OverallScore),
	}
	if err := writer.Write(averageRow); err != nil {
		return fmt.Errorf("failed to write csv average row: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// JSON writes the full record, indented for human eyes.
func JSON(w io.Writer, record models.ExperimentRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode experiment: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
