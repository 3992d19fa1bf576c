package nba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseFixture = `{
	"resource": "leaguedashplayerstats",
	"resultSets": [{
		"name": "LeagueDashPlayerStats",
		"headers": ["PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION", "GP", "MIN"],
		"rowSet": [
			[1630001, "Alpha Guard", "ATL", 62, 1820.0],
			[1630002, "Beta Wing", "BOS", 8, 96.5],
			[1630003, "Gamma Big", "CHI", 41, 700.0]
		]
	}]
}`

const advancedFixture = `{
	"resource": "leaguedashplayerstats",
	"resultSets": [{
		"name": "LeagueDashPlayerStats",
		"headers": ["PLAYER_ID", "PLAYER_NAME", "PIE"],
		"rowSet": [
			[1630001, "Alpha Guard", 0.092],
			[1630002, "Beta Wing", 0.041]
		]
	}]
}`

const draftFixture = `{
	"resource": "drafthistory",
	"resultSets": [{
		"name": "DraftHistory",
		"headers": ["PERSON_ID", "PLAYER_NAME", "OVERALL_PICK", "TEAM_NAME", "TEAM_ABBREVIATION"],
		"rowSet": [
			[1630001, "Alpha Guard", 1, "Atlanta Hawks", "ATL"],
			[1630002, "Beta Wing", 14, "Boston Celtics", "BOS"],
			[1630099, "Out Of Range", 75, "Nowhere", "NWH"]
		]
	}]
}`

func TestParsePlayerTotalsMergesAdvanced(t *testing.T) {
	totals, err := parsePlayerTotals([]byte(baseFixture), []byte(advancedFixture), "2024-25")
	require.NoError(t, err)

	// Gamma Big has no advanced line and is dropped.
	require.Len(t, totals, 2)

	alpha := totals[0]
	assert.Equal(t, 1630001, alpha.PlayerID)
	assert.Equal(t, "Alpha Guard", alpha.PlayerName)
	assert.Equal(t, "ATL", alpha.TeamAbbreviation)
	assert.Equal(t, "2024-25", alpha.Season)
	assert.Equal(t, 62, alpha.GamesPlayed)
	assert.Equal(t, 1820.0, alpha.Minutes)
	assert.Equal(t, 0.092, alpha.PIE)
}

func TestParsePlayerTotalsMissingResultSet(t *testing.T) {
	_, err := parsePlayerTotals([]byte(`{"resultSets":[]}`), []byte(advancedFixture), "2024-25")
	assert.Error(t, err)
}

func TestParsePlayerTotalsColumnOrderIndependent(t *testing.T) {
	reordered := `{
		"resultSets": [{
			"name": "LeagueDashPlayerStats",
			"headers": ["MIN", "GP", "TEAM_ABBREVIATION", "PLAYER_NAME", "PLAYER_ID"],
			"rowSet": [[1820.0, 62, "ATL", "Alpha Guard", 1630001]]
		}]
	}`

	totals, err := parsePlayerTotals([]byte(reordered), []byte(advancedFixture), "2024-25")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 62, totals[0].GamesPlayed)
	assert.Equal(t, 1820.0, totals[0].Minutes)
}

func TestParseDraftHistory(t *testing.T) {
	picks, err := parseDraftHistory([]byte(draftFixture), 2024)
	require.NoError(t, err)

	// Picks outside 1-60 are discarded.
	require.Len(t, picks, 2)
	assert.Equal(t, 1, picks[0].Pick)
	assert.Equal(t, "Alpha Guard", picks[0].PlayerName)
	assert.Equal(t, 2024, picks[0].DraftYear)
	assert.Equal(t, 14, picks[1].Pick)
}

func TestParseDraftHistoryBadJSON(t *testing.T) {
	_, err := parseDraftHistory([]byte("<html>blocked</html>"), 2024)
	assert.Error(t, err)
}
