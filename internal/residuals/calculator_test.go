package residuals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/dataset"
	"github.com/fortuna/aurum/internal/model"
)

func testModelConfig() config.Model {
	return config.Model{
		Estimators:   100,
		MaxDepth:     4,
		LearningRate: 0.1,
		Subsample:    1.0,
		Seed:         42,
	}
}

// pickOneHistory puts twenty pick-1 rookies at $12.5M producing a mean of
// 800, with a cheap tier alongside so the trees have a split to find.
func pickOneHistory() []dataset.ModelingRow {
	var rows []dataset.ModelingRow
	offsets := []float64{-100, -50, 0, 50, 100}
	for i := 0; i < 4; i++ {
		for j, off := range offsets {
			rows = append(rows, dataset.ModelingRow{
				PlayerID:   i*10 + j,
				PlayerName: "Historic One",
				Pick:       1,
				Salary:     12_500_000,
				Production: 800 + off,
			})
			rows = append(rows, dataset.ModelingRow{
				PlayerID:   1000 + i*10 + j,
				PlayerName: "Historic Two",
				Pick:       45,
				Salary:     1_800_000,
				Production: 90 + off/10,
			})
		}
	}
	return rows
}

func TestScoreResidualIsExactDifference(t *testing.T) {
	hist := pickOneHistory()
	m, err := model.Train(testModelConfig(), hist)
	require.NoError(t, err)

	current := []dataset.ModelingRow{
		{PlayerID: 1, PlayerName: "New One", Pick: 1, Salary: 12_500_000, Production: 950},
		{PlayerID: 2, PlayerName: "New Two", Pick: 45, Salary: 1_800_000, Production: -15},
	}

	records := Score(m, current, hist, 0.05)
	require.Len(t, records, 2)

	for i, rec := range records {
		assert.Equal(t, current[i].Production, rec.Actual)
		assert.Equal(t, m.Predict(current[i].Salary), rec.Predicted)
		// Exact, no rounding or clamping.
		assert.Equal(t, rec.Actual-rec.Predicted, rec.Residual)
	}
}

func TestScorePickOneSurplus(t *testing.T) {
	hist := pickOneHistory()
	m, err := model.Train(testModelConfig(), hist)
	require.NoError(t, err)

	current := []dataset.ModelingRow{
		{PlayerID: 1, PlayerName: "New One", Pick: 1, Salary: 12_500_000, Production: 950},
	}

	records := Score(m, current, hist, 0.05)
	require.Len(t, records, 1)

	rec := records[0]
	// Historical pick-1 rookies average 800 at this salary; producing 950
	// is a surplus of about 150, modulo model smoothing.
	assert.Greater(t, rec.Residual, 0.0)
	assert.InDelta(t, 150, rec.Residual, 20)
	assert.Greater(t, rec.Percentile, 50.0)
}

func TestCohortBand(t *testing.T) {
	hist := []dataset.ModelingRow{
		{PlayerName: "Inside Low", Salary: 9_500_000},
		{PlayerName: "Inside High", Salary: 10_500_000},
		{PlayerName: "Outside Low", Salary: 9_400_000},
		{PlayerName: "Outside High", Salary: 10_600_000},
	}

	cohort := Cohort(hist, 10_000_000, 0.05)
	require.Len(t, cohort, 2)
	assert.Equal(t, "Inside Low", cohort[0].PlayerName)
	assert.Equal(t, "Inside High", cohort[1].PlayerName)
}

func TestPercentile(t *testing.T) {
	cohort := []dataset.ModelingRow{
		{Production: 100}, {Production: 200}, {Production: 300}, {Production: 400},
	}

	assert.Equal(t, 0.0, Percentile(cohort, 50))
	assert.Equal(t, 50.0, Percentile(cohort, 250))
	assert.Equal(t, 100.0, Percentile(cohort, 999))

	// Ties are not "below".
	assert.Equal(t, 25.0, Percentile(cohort, 200))
}

func TestPercentileEmptyCohort(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 100))
}
