package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. YAML file named by AURUM_CONFIG, if set
//  3. AURUM_* environment variables (AURUM_MIN_GAMES -> min_games)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("AURUM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("AURUM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "aurum_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := SeasonStartYear(c.CurrentSeason); err != nil {
		return err
	}
	if c.MinGamesPlayed < 0 {
		return fmt.Errorf("min_games must not be negative, got %d", c.MinGamesPlayed)
	}
	if c.CrossValidationFolds < 2 {
		return fmt.Errorf("cv_folds must be at least 2, got %d", c.CrossValidationFolds)
	}
	if c.CohortBandPct <= 0 {
		return fmt.Errorf("cohort_band_pct must be positive, got %g", c.CohortBandPct)
	}
	if c.Model.Estimators <= 0 || c.Model.MaxDepth <= 0 {
		return fmt.Errorf("model estimators and max_depth must be positive")
	}
	if c.Model.LearningRate <= 0 || c.Model.LearningRate > 1 {
		return fmt.Errorf("model learning_rate must be in (0, 1], got %g", c.Model.LearningRate)
	}
	if c.Model.Subsample <= 0 || c.Model.Subsample > 1 {
		return fmt.Errorf("model subsample must be in (0, 1], got %g", c.Model.Subsample)
	}
	return nil
}
