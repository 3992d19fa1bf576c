package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"opening week", time.Date(2025, time.October, 22, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"mid season", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"playoffs", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"offseason before tip", time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"new season tip", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "2026-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentSeason(tt.date))
		})
	}
}

func TestFormatSeason(t *testing.T) {
	assert.Equal(t, "2019-20", FormatSeason(2019))
	assert.Equal(t, "1999-00", FormatSeason(1999))
	assert.Equal(t, "2009-10", FormatSeason(2009))
}

func TestSeasonStartYear(t *testing.T) {
	year, err := SeasonStartYear("2024-25")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	_, err = SeasonStartYear("next year")
	assert.Error(t, err)
}

func TestHistoricalSeasons(t *testing.T) {
	cfg := New()
	cfg.CurrentSeason = "2025-26"
	cfg.StartYear = 2019

	assert.Equal(t, []string{"2019-20", "2020-21", "2021-22", "2022-23", "2023-24", "2024-25"},
		cfg.HistoricalSeasons())
}

func TestHistoricalSeasonsEmptyRange(t *testing.T) {
	cfg := New()
	cfg.CurrentSeason = "2019-20"
	cfg.StartYear = 2019

	assert.Empty(t, cfg.HistoricalSeasons())
}

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, 2019, cfg.StartYear)
	assert.Equal(t, 10, cfg.MinGamesPlayed)
	assert.Equal(t, 5, cfg.CrossValidationFolds)
	assert.Equal(t, 0.05, cfg.CohortBandPct)
	assert.Equal(t, 0.02, cfg.InflationRate)
	assert.Equal(t, 100, cfg.Model.Estimators)
	assert.Equal(t, 4, cfg.Model.MaxDepth)
	assert.Equal(t, 0.1, cfg.Model.LearningRate)
	assert.Equal(t, int64(42), cfg.Model.Seed)
	require.NoError(t, cfg.validate())
}
