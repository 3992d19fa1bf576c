package dataset

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/nba"
	"github.com/fortuna/aurum/internal/salary"
)

// ErrMissingSalaryData means a record's draft pick has no entry in the
// rookie scale table. Picks 1-60 are always in the table by construction,
// so hitting this is a data-integrity bug and aborts the run.
var ErrMissingSalaryData = errors.New("draft pick missing from rookie scale table")

// StatsSource is the upstream stats provider. Satisfied by *nba.Client.
type StatsSource interface {
	FetchPlayerTotals(ctx context.Context, season string) ([]nba.PlayerSeasonTotals, error)
	FetchDraftClass(ctx context.Context, draftYear int) ([]nba.DraftPick, error)
}

// Builder assembles modeling tables from provider stats, the draft board
// and the rookie scale.
type Builder struct {
	source        StatsSource
	scale         salary.Scale
	minGames      int
	inflationRate float64
}

// NewBuilder creates a dataset builder.
func NewBuilder(source StatsSource, scale salary.Scale, minGames int, inflationRate float64) *Builder {
	return &Builder{
		source:        source,
		scale:         scale,
		minGames:      minGames,
		inflationRate: inflationRate,
	}
}

// SeasonRecords fetches one season's stats, joins them to that season's
// draft class and applies the minimum-games filter. Undrafted players drop
// out of the inner join; only regular-season rows arrive from the source.
func (b *Builder) SeasonRecords(ctx context.Context, season string) ([]PlayerSeasonRecord, error) {
	totals, err := b.source.FetchPlayerTotals(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetching stats for %s: %w", season, err)
	}

	draftYear, err := config.SeasonStartYear(season)
	if err != nil {
		return nil, err
	}

	picks, err := b.source.FetchDraftClass(ctx, draftYear)
	if err != nil {
		return nil, fmt.Errorf("fetching draft class for %s: %w", season, err)
	}

	pickByPlayer := make(map[int]nba.DraftPick, len(picks))
	for _, p := range picks {
		pickByPlayer[p.PlayerID] = p
	}

	var records []PlayerSeasonRecord
	for _, t := range totals {
		pick, drafted := pickByPlayer[t.PlayerID]
		if !drafted {
			continue
		}
		if t.GamesPlayed < b.minGames {
			continue
		}

		records = append(records, PlayerSeasonRecord{
			PlayerID:         t.PlayerID,
			PlayerName:       t.PlayerName,
			TeamAbbreviation: t.TeamAbbreviation,
			Season:           season,
			GamesPlayed:      t.GamesPlayed,
			Minutes:          t.Minutes,
			PIE:              t.PIE,
			Pick:             pick.Pick,
		})
	}

	log.Printf("[dataset] %s: %d rookies with %d+ games", season, len(records), b.minGames)
	return records, nil
}

// BuildRows maps records to modeling rows: rookie-scale lookup by pick,
// inflation adjustment into toSeason dollars, production = PIE × minutes.
// Pure; output order follows input order.
func (b *Builder) BuildRows(records []PlayerSeasonRecord, toSeason string) ([]ModelingRow, error) {
	rows := make([]ModelingRow, 0, len(records))
	for _, rec := range records {
		nominal, ok := b.scale.Lookup(rec.Pick)
		if !ok {
			return nil, fmt.Errorf("pick %d (%s): %w", rec.Pick, rec.PlayerName, ErrMissingSalaryData)
		}

		adjusted, err := salary.AdjustSeason(nominal, rec.Season, toSeason, b.inflationRate)
		if err != nil {
			return nil, err
		}

		rows = append(rows, ModelingRow{
			PlayerID:         rec.PlayerID,
			PlayerName:       rec.PlayerName,
			TeamAbbreviation: rec.TeamAbbreviation,
			Season:           rec.Season,
			Pick:             rec.Pick,
			GamesPlayed:      rec.GamesPlayed,
			Minutes:          rec.Minutes,
			PIE:              rec.PIE,
			Salary:           adjusted,
			Production:       rec.PIE * rec.Minutes,
		})
	}

	return rows, nil
}

// BuildHistorical assembles the training table across the given seasons,
// with every salary expressed in currentSeason dollars. A season with no
// qualifying rookies contributes nothing; a fetch failure aborts.
func (b *Builder) BuildHistorical(ctx context.Context, seasons []string, currentSeason string) ([]ModelingRow, error) {
	var all []ModelingRow
	for _, season := range seasons {
		records, err := b.SeasonRecords(ctx, season)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			log.Printf("[dataset] Warning: no qualifying rookies for %s", season)
			continue
		}

		rows, err := b.BuildRows(records, currentSeason)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}

	return all, nil
}

// BuildCurrent assembles the inference table for the active season. Never
// cached; the adjustment to its own season is the identity.
func (b *Builder) BuildCurrent(ctx context.Context, season string) ([]ModelingRow, error) {
	records, err := b.SeasonRecords(ctx, season)
	if err != nil {
		return nil, err
	}
	return b.BuildRows(records, season)
}
