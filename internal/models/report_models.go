package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

// Team is a league team's identity. IDs are stable within a season and
// are the join key for rankings and matchups.
type Team struct {
	ID           int
	Name         string
	Abbreviation string
}

// PlayerStats holds one player's scoring line for a single week.
type PlayerStats struct {
	Points float64
}

// LineupEntry is one player's roster slot for one team-week. Stats is
// keyed by week number; a missing week means the player has no recorded
// points for it.
type LineupEntry struct {
	PlayerName string
	Position   string
	Slot       string
	Stats      map[int]PlayerStats
}

// PositionValue is one (position, value) pair of a metric table. Entry
// order follows the order positions were requested; downstream writers
// look values up by position, never by index.
type PositionValue struct {
	Position string
	Value    float64
}

// TeamSnapshot is one team's complete result for one scoring week.
// ColumnIndex is the team's 1-based position in the league's canonical
// team order; it is assigned once per run and stable across weeks, which
// is what lets multi-week aggregation zip rows positionally.
//
// The metric fields are nil until the corresponding transform has run.
type TeamSnapshot struct {
	Team        Team
	Week        int
	ColumnIndex int
	Lineup      []LineupEntry
	Projected   float64
	Score       float64

	Averages        []PositionValue
	Percentages     []PositionValue
	PowerRanking    *float64
	ProjectionDelta *float64
}

// BoxScoreSide is one side of a matchup with its lineup resolved.
type BoxScoreSide struct {
	Team      Team
	Lineup    []LineupEntry
	Projected float64
	Score     float64
}

// BoxScore is one matchup for one week. Home and Away are explicit
// fields rather than a keyed lookup.
type BoxScore struct {
	Week int
	Home BoxScoreSide
	Away BoxScoreSide
}

// RankedTeam pairs a power-ranking score with the team it belongs to.
// The provider returns these in no guaranteed order.
type RankedTeam struct {
	Score float64
	Team  Team
}
