package nba

// statsResponse is the envelope every stats.nba.com endpoint returns:
// named result sets of header + row tables.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// PlayerSeasonTotals is one player's aggregated regular-season line,
// merged from the Base and Advanced measure types.
type PlayerSeasonTotals struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation string
	Season           string
	GamesPlayed      int
	Minutes          float64
	PIE              float64
}

// DraftPick is one row of a draft class.
type DraftPick struct {
	PlayerID         int
	PlayerName       string
	Pick             int
	TeamName         string
	TeamAbbreviation string
	DraftYear        int
}
