package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/aurum/internal/cache"
	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/dataset"
	"github.com/fortuna/aurum/internal/diagnostics"
	"github.com/fortuna/aurum/internal/export"
	"github.com/fortuna/aurum/internal/model"
	"github.com/fortuna/aurum/internal/nba"
	"github.com/fortuna/aurum/internal/residuals"
	"github.com/fortuna/aurum/internal/salary"
	"github.com/fortuna/aurum/internal/store"
	"github.com/fortuna/aurum/internal/store/repository"
)

const (
	serviceName    = "aurum"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NBA Rookie Contract Value Analysis", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seasons := cfg.HistoricalSeasons()
	if len(seasons) == 0 {
		log.Fatalf("No historical seasons between start year %d and current season %s", cfg.StartYear, cfg.CurrentSeason)
	}

	log.Printf("Current season: %s", cfg.CurrentSeason)
	log.Printf("Training seasons: %s through %s", seasons[0], seasons[len(seasons)-1])

	ctx := context.Background()

	// Rookie scale: CSV first, scraped HTML table as fallback.
	scale, err := salary.LoadScale(cfg.DataDir, cfg.CurrentSeason)
	if err != nil && cfg.SalaryScaleURL != "" {
		log.Printf("No rookie scale CSV (%v), scraping %s", err, cfg.SalaryScaleURL)
		scale, err = salary.FetchScale(ctx, cfg.SalaryScaleURL)
	}
	if err != nil {
		log.Fatalf("Failed to load rookie scale salaries: %v", err)
	}
	log.Printf("✓ Rookie scale loaded (%d picks)", len(scale))

	// Optional Redis memoization of raw provider payloads.
	var respCache nba.ResponseCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		respCache = redisCache
		log.Println("✓ Connected to Redis")
	}

	client := nba.NewClient(cfg.StatsAPIBase, respCache)
	builder := dataset.NewBuilder(client, scale, cfg.MinGamesPlayed, cfg.InflationRate)

	// Historical training table, via the file cache when the key matches.
	key := cache.Key{
		FirstSeason:   seasons[0],
		LastSeason:    seasons[len(seasons)-1],
		CurrentSeason: cfg.CurrentSeason,
	}
	fileCache := cache.NewFileCache(cfg.OutputDir)

	historical, hit := fileCache.Load(key)
	if hit {
		log.Printf("✓ Historical dataset loaded from cache (%d rookies)", len(historical))
	} else {
		log.Println("Building historical training dataset...")
		historical, err = builder.BuildHistorical(ctx, seasons, cfg.CurrentSeason)
		if err != nil {
			log.Fatalf("Failed to build historical dataset: %v", err)
		}
		if err := fileCache.Store(key, historical); err != nil {
			log.Printf("Warning: could not cache historical dataset: %v", err)
		}
		log.Printf("✓ Historical dataset built (%d rookies)", len(historical))
	}

	if len(historical) == 0 {
		log.Fatalf("No historical data collected. Check API access and season values.")
	}

	// Cross-validate the fitting procedure before the final fit. Metrics
	// are always recomputed here, never reused from a persisted model.
	log.Printf("Performing %d-fold cross-validation...", cfg.CrossValidationFolds)
	metrics, err := diagnostics.Evaluate(cfg.Model, historical, cfg.CrossValidationFolds)
	if err != nil {
		log.Fatalf("Cross-validation failed: %v", err)
	}
	log.Printf("✓ CV metrics: MAE %.2f, RMSE %.2f, R² %.3f", metrics.MAE, metrics.RMSE, metrics.R2)

	log.Printf("Training model on %d historical rookies...", len(historical))
	trained, err := model.Train(cfg.Model, historical)
	if err != nil {
		log.Fatalf("Model training failed: %v", err)
	}
	trained.CV = metrics

	modelPath := filepath.Join(cfg.OutputDir, "model.gob")
	if err := model.Save(modelPath, trained); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	log.Printf("✓ Model saved to %s", modelPath)

	// Current-season inference table; always fetched fresh.
	log.Println("Building current season dataset...")
	current, err := builder.BuildCurrent(ctx, cfg.CurrentSeason)
	if err != nil {
		log.Fatalf("Failed to build current season dataset: %v", err)
	}
	if len(current) == 0 {
		log.Fatalf("No current season data collected.")
	}

	records := residuals.Score(trained, current, historical, cfg.CohortBandPct)
	log.Printf("✓ Calculated residuals for %d rookies", len(records))

	csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_rookies_residuals.csv", cfg.CurrentSeason))
	if err := export.WriteCSV(csvPath, records); err != nil {
		log.Fatalf("Failed to export residuals: %v", err)
	}
	log.Printf("✓ Residuals exported to %s", csvPath)

	barPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_residual_bar_chart.png", cfg.CurrentSeason))
	if err := export.ResidualBarChart(barPath, records, cfg.CurrentSeason); err != nil {
		log.Fatalf("Failed to render residual chart: %v", err)
	}
	log.Printf("✓ Residual chart saved to %s", barPath)

	// In-sample accuracy over the scored rookies. Descriptive only; the
	// held-out numbers above are the fit-quality report.
	actual := make([]float64, len(records))
	predicted := make([]float64, len(records))
	for i, rec := range records {
		actual[i] = rec.Actual
		predicted[i] = rec.Predicted
	}
	inSample := diagnostics.Accuracy(actual, predicted)

	scatterPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_accuracy_diagnostic.png", cfg.CurrentSeason))
	if err := export.AccuracyScatter(scatterPath, records, cfg.CurrentSeason, inSample); err != nil {
		log.Fatalf("Failed to render accuracy chart: %v", err)
	}
	log.Printf("✓ Accuracy chart saved to %s", scatterPath)

	printSummary(records, metrics)

	if cfg.ArchiveDSN != "" {
		if err := archiveRun(ctx, cfg, key, len(historical), records, metrics); err != nil {
			log.Printf("Warning: failed to archive run: %v", err)
		} else {
			log.Println("✓ Run archived")
		}
	}

	runBreakdownLoop(cfg, records, historical)

	log.Println("ANALYSIS COMPLETE")
}

// printSummary writes the season summary and the top/bottom five rookies.
func printSummary(records []residuals.ResidualRecord, cv model.CVMetrics) {
	summary := export.Summarize(records)

	fmt.Println("\n=== Current Season Summary Statistics ===")
	fmt.Printf("  Rookies analyzed: %d\n", summary.TotalRookies)
	fmt.Printf("  Providing surplus value: %d\n", summary.SurplusRookies)
	fmt.Printf("  Providing deficit value: %d\n", summary.DeficitRookies)
	fmt.Printf("  Maximum surplus: %+.2f\n", summary.MaxSurplus)
	fmt.Printf("  Maximum deficit: %.2f\n", summary.MaxDeficit)
	fmt.Printf("  Mean residual: %.2f\n", summary.MeanResidual)
	fmt.Printf("  Median residual: %.2f\n", summary.MedianResidual)
	fmt.Printf("  Cross-validated fit: MAE %.2f, RMSE %.2f, R² %.3f\n", cv.MAE, cv.RMSE, cv.R2)

	ranked := export.SortByResidual(records)

	fmt.Println("\n  Top 5 Surplus Value Rookies")
	for _, rec := range ranked[:min(5, len(ranked))] {
		fmt.Printf("  %-20s (%3s) | Pick %2d | Residual: %+.2f\n",
			rec.PlayerName, rec.TeamAbbreviation, rec.Pick, rec.Residual)
	}

	fmt.Println("\n  Bottom 5 (Biggest Deficits) Rookies")
	for i := len(ranked) - 1; i >= max(0, len(ranked)-5); i-- {
		rec := ranked[i]
		fmt.Printf("  %-20s (%3s) | Pick %2d | Residual: %.2f\n",
			rec.PlayerName, rec.TeamAbbreviation, rec.Pick, rec.Residual)
	}
}

// runBreakdownLoop interactively explains residuals for requested players.
// A failed lookup is reported and re-prompted; it never aborts the run.
func runBreakdownLoop(cfg *config.Config, records []residuals.ResidualRecord, historical []dataset.ModelingRow) {
	fmt.Println("\n=== Player Breakdown ===")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nWould you like a detailed breakdown for any specific player(s)?")
		fmt.Print("Enter player name(s) separated by commas, or press Enter to skip: ")

		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			return
		}

		var names []string
		for _, name := range strings.Split(input, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			fmt.Println("\n  No valid player names provided. Please try again or press Enter to skip.")
			continue
		}

		foundAny := false
		for _, name := range names {
			breakdown, err := diagnostics.Explain(name, records, historical, cfg.CohortBandPct, cfg.StartYear)
			if errors.Is(err, diagnostics.ErrPlayerNotFound) {
				fmt.Printf("\n  Player not found: %s\n", name)
				continue
			}
			if err != nil {
				fmt.Printf("\n  Could not build breakdown for %s: %v\n", name, err)
				continue
			}

			foundAny = true
			fmt.Printf("\n%s\n", strings.Repeat("=", 60))
			fmt.Print(breakdown.Format())
		}

		if foundAny {
			return
		}
		fmt.Println("\n  Please try again with different name(s) or press Enter to skip.")
	}
}

// archiveRun stores the run and its residual table in Postgres.
func archiveRun(ctx context.Context, cfg *config.Config, key cache.Key, trainingRows int, records []residuals.ResidualRecord, cv model.CVMetrics) error {
	db, err := store.NewDatabase(cfg.ArchiveDSN)
	if err != nil {
		return fmt.Errorf("connecting to archive: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("migrating archive: %w", err)
	}

	run := &store.Run{
		ID:                  uuid.New(),
		Season:              cfg.CurrentSeason,
		FirstTrainingSeason: key.FirstSeason,
		LastTrainingSeason:  key.LastSeason,
		TrainingRows:        trainingRows,
		ScoredRookies:       len(records),
		CVMAE:               cv.MAE,
		CVRMSE:              cv.RMSE,
		CVR2:                cv.R2,
		CreatedAt:           time.Now(),
	}

	return repository.NewRunRepository(db).InsertRun(ctx, run, records)
}
