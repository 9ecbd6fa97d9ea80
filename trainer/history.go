package trainer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"sternhalma/model"
)

// WriteHistoryCSV exports per-generation summaries for offline analysis.
func WriteHistoryCSV(path string, history []model.GenerationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"generation", "best_fitness", "mean_fitness", "best_wins"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}

	for _, rec := range history {
		row := []string{
			strconv.Itoa(rec.Generation),
			strconv.FormatFloat(rec.BestFitness, 'f', 2, 64),
			strconv.FormatFloat(rec.MeanFitness, 'f', 2, 64),
			strconv.Itoa(rec.BestWins),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write history row: %w", err)
		}
	}
	return nil
}
