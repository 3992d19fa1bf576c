package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/aurum/internal/model"
	"github.com/fortuna/aurum/internal/residuals"
)

func testRecords() []residuals.ResidualRecord {
	return []residuals.ResidualRecord{
		{PlayerName: "Middling", TeamAbbreviation: "CHI", Pick: 20, GamesPlayed: 40, Minutes: 900, PIE: 0.05, Salary: 3_000_000, Actual: 45, Predicted: 44.5, Residual: 0.5, Percentile: 51},
		{PlayerName: "Breakout", TeamAbbreviation: "ATL", Pick: 30, GamesPlayed: 70, Minutes: 1900, PIE: 0.11, Salary: 2_500_000, Actual: 209, Predicted: 60, Residual: 149, Percentile: 97},
		{PlayerName: "Struggling", TeamAbbreviation: "DET", Pick: 1, GamesPlayed: 50, Minutes: 1500, PIE: 0.03, Salary: 12_500_000, Actual: 45, Predicted: 700, Residual: -655, Percentile: 4},
	}
}

func TestSortByResidual(t *testing.T) {
	records := testRecords()
	sorted := SortByResidual(records)

	assert.Equal(t, "Breakout", sorted[0].PlayerName)
	assert.Equal(t, "Struggling", sorted[2].PlayerName)
	// Input untouched.
	assert.Equal(t, "Middling", records[0].PlayerName)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "residuals.csv")
	require.NoError(t, WriteCSV(path, testRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Player", "Team", "Pick", "Salary", "Games", "Minutes", "PIE", "Production", "Expected", "Residual", "Percentile"}, rows[0])

	// Sorted by descending residual.
	assert.Equal(t, "Breakout", rows[1][0])
	assert.Equal(t, "Middling", rows[2][0])
	assert.Equal(t, "Struggling", rows[3][0])

	assert.Equal(t, "149.00", rows[1][9])
	assert.Equal(t, "-655.00", rows[3][9])
	assert.Equal(t, "97", rows[1][10])
}

func TestSummarize(t *testing.T) {
	s := Summarize(testRecords())

	assert.Equal(t, 3, s.TotalRookies)
	assert.Equal(t, 2, s.SurplusRookies)
	assert.Equal(t, 1, s.DeficitRookies)
	assert.Equal(t, 149.0, s.MaxSurplus)
	assert.Equal(t, -655.0, s.MaxDeficit)
	assert.InDelta(t, (0.5+149-655)/3, s.MeanResidual, 1e-9)
	assert.Equal(t, 0.5, s.MedianResidual)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalRookies)
	assert.Equal(t, 0.0, s.MeanResidual)
}

func TestIdentityBounds(t *testing.T) {
	lo, hi := identityBounds(testRecords())
	assert.Equal(t, 44.5, lo)
	assert.Equal(t, 700.0, hi)

	// All-negative productions must not stretch the line to zero.
	negative := []residuals.ResidualRecord{
		{Actual: -120, Predicted: -80},
		{Actual: -40, Predicted: -95},
	}
	lo, hi = identityBounds(negative)
	assert.Equal(t, -120.0, lo)
	assert.Equal(t, -40.0, hi)

	lo, hi = identityBounds(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestCharts(t *testing.T) {
	dir := t.TempDir()

	barPath := filepath.Join(dir, "bar.png")
	require.NoError(t, ResidualBarChart(barPath, testRecords(), "2025-26"))
	info, err := os.Stat(barPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	scatterPath := filepath.Join(dir, "scatter.png")
	require.NoError(t, AccuracyScatter(scatterPath, testRecords(), "2025-26", model.CVMetrics{MAE: 12.3, RMSE: 18.1, R2: 0.71}))
	info, err = os.Stat(scatterPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
