package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/dataset"
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

// twoTierRows builds a training table with a cheap tier producing around
// lowProd and an expensive tier producing around highProd.
func twoTierRows(lowProd, highProd float64) []dataset.ModelingRow {
	var rows []dataset.ModelingRow
	offsets := []float64{-40, -20, 0, 20, 40}
	for i, off := range offsets {
		rows = append(rows, dataset.ModelingRow{
			PlayerID: i, Salary: 2_000_000, Production: lowProd + off,
		})
		rows = append(rows, dataset.ModelingRow{
			PlayerID: 100 + i, Salary: 12_500_000, Production: highProd + off,
		})
	}
	return rows
}

func TestTrainEmptyRows(t *testing.T) {
	_, err := Train(testModelConfig(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientTrainingData)
}

func TestTrainLearnsTierMeans(t *testing.T) {
	m, err := Train(testModelConfig(), twoTierRows(150, 800))
	require.NoError(t, err)

	// After 100 boosting rounds the tier means are fit almost exactly.
	assert.InDelta(t, 800, m.Predict(12_500_000), 1.0)
	assert.InDelta(t, 150, m.Predict(2_000_000), 1.0)
}

func TestTrainDeterministicWithSeed(t *testing.T) {
	cfg := testModelConfig()
	cfg.Subsample = 0.8

	rows := twoTierRows(150, 800)
	m1, err := Train(cfg, rows)
	require.NoError(t, err)
	m2, err := Train(cfg, rows)
	require.NoError(t, err)

	for _, s := range []float64{2_000_000, 7_000_000, 12_500_000} {
		assert.Equal(t, m1.Predict(s), m2.Predict(s))
	}
}

func TestTrainConstantSalary(t *testing.T) {
	// A degenerate table with one salary level collapses to the mean.
	rows := []dataset.ModelingRow{
		{PlayerID: 1, Salary: 5_000_000, Production: 100},
		{PlayerID: 2, Salary: 5_000_000, Production: 300},
	}

	m, err := Train(testModelConfig(), rows)
	require.NoError(t, err)
	assert.InDelta(t, 200, m.Predict(5_000_000), 1e-6)
}

func TestPredictDoesNotMutateModel(t *testing.T) {
	m, err := Train(testModelConfig(), twoTierRows(150, 800))
	require.NoError(t, err)

	first := m.Predict(9_000_000)
	for i := 0; i < 50; i++ {
		m.Predict(float64(i) * 1_000_000)
	}
	assert.Equal(t, first, m.Predict(9_000_000))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m, err := Train(testModelConfig(), twoTierRows(150, 800))
	require.NoError(t, err)
	m.CV = CVMetrics{MAE: 25.5, RMSE: 31.2, R2: 0.41}

	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, Save(path, m))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, m.CV, loaded.CV)
	for _, s := range []float64{2_000_000, 8_000_000, 12_500_000} {
		assert.Equal(t, m.Predict(s), loaded.Predict(s))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	assert.Error(t, err)
}
