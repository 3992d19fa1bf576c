package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fortuna/aurum/internal/residuals"
)

// SortByResidual orders records by descending residual (biggest surplus
// first) without touching the input slice.
func SortByResidual(records []residuals.ResidualRecord) []residuals.ResidualRecord {
	sorted := make([]residuals.ResidualRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Residual > sorted[j].Residual
	})
	return sorted
}

// WriteCSV exports the residual table, sorted by descending residual.
func WriteCSV(path string, records []residuals.ResidualRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating residuals csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Player", "Team", "Pick", "Salary", "Games", "Minutes", "PIE", "Production", "Expected", "Residual", "Percentile"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, rec := range SortByResidual(records) {
		row := []string{
			rec.PlayerName,
			rec.TeamAbbreviation,
			strconv.Itoa(rec.Pick),
			strconv.FormatFloat(rec.Salary, 'f', 0, 64),
			strconv.Itoa(rec.GamesPlayed),
			strconv.FormatFloat(rec.Minutes, 'f', 0, 64),
			strconv.FormatFloat(rec.PIE, 'f', 3, 64),
			strconv.FormatFloat(rec.Actual, 'f', 2, 64),
			strconv.FormatFloat(rec.Predicted, 'f', 2, 64),
			strconv.FormatFloat(rec.Residual, 'f', 2, 64),
			strconv.FormatFloat(rec.Percentile, 'f', 0, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", rec.PlayerName, err)
		}
	}

	w.Flush()
	return w.Error()
}
