package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds the full pipeline configuration. It is built once at startup
// and passed into each component; nothing reads ambient state after load.
type Config struct {
	// CurrentSeason is the season under analysis, e.g. "2025-26".
	// Empty means auto-detect from the wall clock.
	CurrentSeason string `koanf:"current_season"`

	// StartYear is the first draft year included in the historical
	// training range.
	StartYear int `koanf:"start_year"`

	// MinGamesPlayed excludes rookies with too small a sample.
	MinGamesPlayed int `koanf:"min_games"`

	// CrossValidationFolds is k for k-fold model evaluation.
	CrossValidationFolds int `koanf:"cv_folds"`

	// CohortBandPct is the ± salary band used for percentile cohorts,
	// e.g. 0.05 for ±5%.
	CohortBandPct float64 `koanf:"cohort_band_pct"`

	// InflationRate is the annual compounding rate used to bring
	// historical rookie-scale salaries into current-season dollars.
	InflationRate float64 `koanf:"inflation_rate"`

	Model Model `koanf:"model"`

	// DataDir holds the rookie-scale salary CSV.
	DataDir string `koanf:"data_dir"`

	// OutputDir receives the cache, CSV, chart and model artifacts.
	OutputDir string `koanf:"output_dir"`

	// StatsAPIBase overrides the stats provider base URL (tests).
	StatsAPIBase string `koanf:"stats_api_base"`

	// SalaryScaleURL is an optional HTML rookie-scale table scraped
	// when no salary CSV is present.
	SalaryScaleURL string `koanf:"salary_scale_url"`

	// RedisURL enables response caching of raw provider payloads when set.
	RedisURL string `koanf:"redis_url"`

	// ArchiveDSN enables the Postgres run archive when set.
	ArchiveDSN string `koanf:"archive_dsn"`

	// APIPort is the listen port for the read-only results API (aurumd).
	APIPort string `koanf:"api_port"`
}

// Model holds the gradient boosting hyperparameters. These are
// configuration, never derived from the data.
type Model struct {
	Estimators   int     `koanf:"estimators"`
	MaxDepth     int     `koanf:"max_depth"`
	LearningRate float64 `koanf:"learning_rate"`
	Subsample    float64 `koanf:"subsample"`
	Seed         int64   `koanf:"seed"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		CurrentSeason:        CurrentSeason(time.Now()),
		StartYear:            2019,
		MinGamesPlayed:       10,
		CrossValidationFolds: 5,
		CohortBandPct:        0.05,
		InflationRate:        0.02,
		Model: Model{
			Estimators:   100,
			MaxDepth:     4,
			LearningRate: 0.1,
			Subsample:    1.0,
			Seed:         42,
		},
		DataDir:      "data",
		OutputDir:    "outputs",
		StatsAPIBase: "https://stats.nba.com",
		APIPort:      "8080",
	}
}

// HistoricalSeasons returns the training seasons from StartYear up to,
// but not including, the current season.
func (c *Config) HistoricalSeasons() []string {
	currentStart, err := SeasonStartYear(c.CurrentSeason)
	if err != nil {
		return nil
	}

	var seasons []string
	for year := c.StartYear; year < currentStart; year++ {
		seasons = append(seasons, FormatSeason(year))
	}
	return seasons
}

// CurrentSeason determines the NBA season in progress at t. Seasons run
// October through June, so Jan-Sep belongs to the season that started the
// previous calendar year.
func CurrentSeason(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.October {
		startYear--
	}
	return FormatSeason(startYear)
}

// FormatSeason renders a start year as a season label, e.g. 2025 -> "2025-26".
func FormatSeason(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// SeasonStartYear parses the start year out of a season label like "2025-26".
func SeasonStartYear(season string) (int, error) {
	parts := strings.SplitN(season, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", season, err)
	}
	return year, nil
}
