package nba

import (
	"encoding/json"
	"fmt"
)

// Result set and column names used by the stats API. Columns are looked up
// by header name rather than index so reordered payloads keep parsing.
const (
	resultSetLeagueDash   = "LeagueDashPlayerStats"
	resultSetDraftHistory = "DraftHistory"

	colPlayerID   = "PLAYER_ID"
	colPlayerName = "PLAYER_NAME"
	colTeamAbbrev = "TEAM_ABBREVIATION"
	colGames      = "GP"
	colMinutes    = "MIN"
	colPIE        = "PIE"

	colPersonID    = "PERSON_ID"
	colOverallPick = "OVERALL_PICK"
	colDraftTeam   = "TEAM_NAME"
	colDraftAbbrev = "TEAM_ABBREVIATION"
	colDraftName   = "PLAYER_NAME"
)

// parsePlayerTotals merges Base and Advanced leaguedashplayerstats payloads
// into one totals row per player. Base carries games, minutes and team;
// Advanced carries PIE.
func parsePlayerTotals(baseBody, advancedBody []byte, season string) ([]PlayerSeasonTotals, error) {
	baseSet, err := findResultSet(baseBody, resultSetLeagueDash)
	if err != nil {
		return nil, err
	}
	advSet, err := findResultSet(advancedBody, resultSetLeagueDash)
	if err != nil {
		return nil, err
	}

	advCols := columnIndex(advSet.Headers)
	pieByPlayer := make(map[int]float64, len(advSet.RowSet))
	for _, row := range advSet.RowSet {
		id, ok := intAt(row, advCols, colPlayerID)
		if !ok {
			continue
		}
		pie, ok := floatAt(row, advCols, colPIE)
		if !ok {
			continue
		}
		pieByPlayer[id] = pie
	}

	baseCols := columnIndex(baseSet.Headers)
	totals := make([]PlayerSeasonTotals, 0, len(baseSet.RowSet))
	for _, row := range baseSet.RowSet {
		id, ok := intAt(row, baseCols, colPlayerID)
		if !ok {
			continue
		}

		pie, ok := pieByPlayer[id]
		if !ok {
			// No advanced line for this player; nothing to benchmark.
			continue
		}

		games, _ := intAt(row, baseCols, colGames)
		minutes, _ := floatAt(row, baseCols, colMinutes)

		totals = append(totals, PlayerSeasonTotals{
			PlayerID:         id,
			PlayerName:       stringAt(row, baseCols, colPlayerName),
			TeamAbbreviation: stringAt(row, baseCols, colTeamAbbrev),
			Season:           season,
			GamesPlayed:      games,
			Minutes:          minutes,
			PIE:              pie,
		})
	}

	return totals, nil
}

// parseDraftHistory extracts picks 1-60 from a drafthistory payload.
func parseDraftHistory(body []byte, draftYear int) ([]DraftPick, error) {
	set, err := findResultSet(body, resultSetDraftHistory)
	if err != nil {
		return nil, err
	}

	cols := columnIndex(set.Headers)
	picks := make([]DraftPick, 0, len(set.RowSet))
	for _, row := range set.RowSet {
		id, ok := intAt(row, cols, colPersonID)
		if !ok {
			continue
		}
		pick, ok := intAt(row, cols, colOverallPick)
		if !ok || pick < 1 || pick > 60 {
			continue
		}

		picks = append(picks, DraftPick{
			PlayerID:         id,
			PlayerName:       stringAt(row, cols, colDraftName),
			Pick:             pick,
			TeamName:         stringAt(row, cols, colDraftTeam),
			TeamAbbreviation: stringAt(row, cols, colDraftAbbrev),
			DraftYear:        draftYear,
		})
	}

	return picks, nil
}

func findResultSet(body []byte, name string) (*resultSet, error) {
	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding stats payload: %w", err)
	}

	for i := range resp.ResultSets {
		if resp.ResultSets[i].Name == name {
			return &resp.ResultSets[i], nil
		}
	}

	return nil, fmt.Errorf("result set %q not found in payload", name)
}

func columnIndex(headers []string) map[string]int {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[h] = i
	}
	return cols
}

// Cell extractors. The stats API encodes numbers as JSON floats and uses
// null for missing values, so every access is defensive.

func floatAt(row []interface{}, cols map[string]int, name string) (float64, bool) {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return 0, false
	}
	v, ok := row[i].(float64)
	return v, ok
}

func intAt(row []interface{}, cols map[string]int, name string) (int, bool) {
	v, ok := floatAt(row, cols, name)
	return int(v), ok
}

func stringAt(row []interface{}, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return ""
}
