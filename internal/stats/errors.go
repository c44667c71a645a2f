package stats

import "fmt"

// UnknownTeamError reports a provider inconsistency: a matchup or
// ranking entry references a team that is not in the canonical team
// order. There is no sensible report column for such a team, so the run
// must abort.
type UnknownTeamError struct {
	TeamID   int
	TeamName string
	Week     int
}

func (e *UnknownTeamError) Error() string {
	name := e.TeamName
	if name == "" {
		name = fmt.Sprintf("id %d", e.TeamID)
	}
	return fmt.Sprintf("week %d: team %s not found in canonical team order", e.Week, name)
}

// ShapeMismatchError reports differing metric-table lengths during
// positional multi-week aggregation. Continuing would leave stale data
// in the accumulator for the offending team while other teams advance,
// so the section aborts instead.
type ShapeMismatchError struct {
	Team string
	Week int
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("week %d: team %q has %d metric entries, want %d", e.Week, e.Team, e.Got, e.Want)
}
