package residuals

import (
	"github.com/fortuna/aurum/internal/dataset"
	"github.com/fortuna/aurum/internal/model"
)

// ResidualRecord is the scored output for one current-season rookie.
// Immutable once produced; ordering is left to consumers.
type ResidualRecord struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation string
	Season           string
	Pick             int
	GamesPlayed      int
	Minutes          float64
	PIE              float64
	Salary           float64

	// Actual is production (PIE × minutes); Residual is exactly
	// Actual − Predicted with no rounding or clamping.
	Actual    float64
	Predicted float64
	Residual  float64

	// Percentile ranks Actual against historical rookies paid within
	// ±bandPct of Salary, 0-100.
	Percentile float64
}

// Score applies the trained model to the current-season table. Percentiles
// compare against the historical cohort at a similar salary rather than the
// whole population.
func Score(m *model.TrainedModel, current, historical []dataset.ModelingRow, bandPct float64) []ResidualRecord {
	records := make([]ResidualRecord, 0, len(current))
	for _, row := range current {
		predicted := m.Predict(row.Salary)
		cohort := Cohort(historical, row.Salary, bandPct)

		records = append(records, ResidualRecord{
			PlayerID:         row.PlayerID,
			PlayerName:       row.PlayerName,
			TeamAbbreviation: row.TeamAbbreviation,
			Season:           row.Season,
			Pick:             row.Pick,
			GamesPlayed:      row.GamesPlayed,
			Minutes:          row.Minutes,
			PIE:              row.PIE,
			Salary:           row.Salary,
			Actual:           row.Production,
			Predicted:        predicted,
			Residual:         row.Production - predicted,
			Percentile:       Percentile(cohort, row.Production),
		})
	}

	return records
}

// Cohort returns the historical rows whose salary lies within ±bandPct of
// salary, preserving input order.
func Cohort(historical []dataset.ModelingRow, salary, bandPct float64) []dataset.ModelingRow {
	lo := salary * (1 - bandPct)
	hi := salary * (1 + bandPct)

	var cohort []dataset.ModelingRow
	for _, row := range historical {
		if row.Salary >= lo && row.Salary <= hi {
			cohort = append(cohort, row)
		}
	}
	return cohort
}

// Percentile is the share of the cohort producing strictly less than
// actual, as 0-100. An empty cohort yields 0.
func Percentile(cohort []dataset.ModelingRow, actual float64) float64 {
	if len(cohort) == 0 {
		return 0
	}

	below := 0
	for _, row := range cohort {
		if row.Production < actual {
			below++
		}
	}
	return float64(below) / float64(len(cohort)) * 100
}
