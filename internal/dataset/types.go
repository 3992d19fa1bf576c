package dataset

// PlayerSeasonRecord is one rookie's aggregated regular-season line joined
// with their draft slot. Records are immutable once built; anything below
// the minimum-games threshold or without a draft pick never becomes one.
type PlayerSeasonRecord struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation string
	Season           string
	GamesPlayed      int
	Minutes          float64
	PIE              float64
	Pick             int
}

// ModelingRow is one training or inference example. Salary is the only
// model feature; the identifier fields ride along for attribution.
type ModelingRow struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation string
	Season           string
	Pick             int
	GamesPlayed      int
	Minutes          float64
	PIE              float64

	// Salary is the 4-year-average rookie-scale salary adjusted to
	// current-season dollars.
	Salary float64

	// Production is PIE × total minutes, the single performance label.
	// May be negative.
	Production float64
}
