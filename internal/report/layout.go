package report

// Report layout contract. Rows are 1-indexed and allocated per section
// by this package; the cell addressor only ever chooses columns. The
// ranges below must not overlap: each position section spans one row
// per entry of Positions.
//
//	row 1      team names (+ trailing "League average" label)
//	rows 2-8   average points per position, started
//	rows 9-15  average points per position, overall
//	row 16     power ranking
//	row 18     over/under projection
//	rows 20-26 percentage of points per position, started
//	rows 27-33 percentage of points per position, overall
//
// Column 0 holds row labels, columns 1..N the teams by column index,
// and column N+1 the league average.
const (
	rowTeamNames       = 1
	rowAverageStarted  = 2
	rowAverageOverall  = 9
	rowPowerRanking    = 16
	rowProjectionDelta = 18
	rowPercentStarted  = 20
	rowPercentOverall  = 27
)

// Positions are the lineup positions reported on, in row order.
var Positions = []string{"QB", "WR", "RB", "TE", "K", "D/ST"}

// BenchSlots are the lineup slots excluded from "started" sections.
var BenchSlots = []string{"BE"}

const (
	opTeamNames       = "team_names"
	opAveragePoints   = "average_points_per_position"
	opPowerRanking    = "power_ranking"
	opProjectionDelta = "projection_delta"
	opPercentPoints   = "percentage_of_points_per_position"
)
