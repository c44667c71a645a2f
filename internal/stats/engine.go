package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/omarshaarawi/statsheet/internal/models"
)

// Provider supplies the raw league data the engine aggregates. It is
// satisfied by the fantasy API facade.
type Provider interface {
	Teams() ([]models.Team, error)
	BoxScores(week int) ([]models.BoxScore, error)
	PowerRankings(week int) ([]models.RankedTeam, error)
}

// Engine turns per-player box-score records into per-team rollups. All
// transforms are synchronous, pure computations over in-memory
// snapshots; the only I/O is through the Provider.
type Engine struct {
	provider Provider

	teams         []models.Team
	columnByTeam  map[int]int
	canonicalDone bool
}

func NewEngine(provider Provider) *Engine {
	return &Engine{provider: provider}
}

// CanonicalTeams returns the league's fixed team list. It is resolved
// once per run; a team's 1-based index in this list is its report
// column index for every week.
func (e *Engine) CanonicalTeams() ([]models.Team, error) {
	if err := e.resolveCanonicalOrder(); err != nil {
		return nil, err
	}
	return e.teams, nil
}

func (e *Engine) resolveCanonicalOrder() error {
	if e.canonicalDone {
		return nil
	}
	teams, err := e.provider.Teams()
	if err != nil {
		return fmt.Errorf("resolving canonical team order: %w", err)
	}
	e.teams = teams
	e.columnByTeam = make(map[int]int, len(teams))
	for i, t := range teams {
		e.columnByTeam[t.ID] = i + 1
	}
	e.canonicalDone = true
	return nil
}

// TeamSnapshots builds one snapshot per matchup side for the given
// week. A side whose team is missing from the canonical order is a
// provider inconsistency and fails the whole query.
func (e *Engine) TeamSnapshots(week int) ([]models.TeamSnapshot, error) {
	if err := e.resolveCanonicalOrder(); err != nil {
		return nil, err
	}

	boxScores, err := e.provider.BoxScores(week)
	if err != nil {
		return nil, fmt.Errorf("fetching box scores for week %d: %w", week, err)
	}

	var snapshots []models.TeamSnapshot
	for _, boxScore := range boxScores {
		for _, side := range []models.BoxScoreSide{boxScore.Home, boxScore.Away} {
			column, ok := e.columnByTeam[side.Team.ID]
			if !ok {
				return nil, &UnknownTeamError{TeamID: side.Team.ID, TeamName: side.Team.Name, Week: week}
			}
			snapshots = append(snapshots, models.TeamSnapshot{
				Team:        e.teams[column-1],
				Week:        week,
				ColumnIndex: column,
				Lineup:      side.Lineup,
				Projected:   side.Projected,
				Score:       side.Score,
			})
		}
	}

	return snapshots, nil
}

// AveragePointsPerPosition fills each snapshot's Averages table: for
// every requested position, the mean points over lineup entries of that
// position whose slot is not excluded. A team with no qualifying
// entries for a position gets no entry for it, rather than a zero.
func AveragePointsPerPosition(snapshots []models.TeamSnapshot, week int, positions, excludeSlots []string) {
	excluded := slotSet(excludeSlots)

	for i := range snapshots {
		snapshot := &snapshots[i]
		snapshot.Averages = nil
		for _, position := range positions {
			count := 0
			total := 0.0
			for _, entry := range snapshot.Lineup {
				if entry.Position != position || excluded[entry.Slot] {
					continue
				}
				count++
				if stats, ok := entry.Stats[week]; ok {
					total += stats.Points
				}
			}
			if count > 0 {
				snapshot.Averages = append(snapshot.Averages, models.PositionValue{
					Position: position,
					Value:    round2(total / float64(count)),
				})
			}
		}
	}
}

// PercentageOfPointsByPosition fills each snapshot's Percentages table:
// the share of the team's total points scored by each requested
// position. A zero team total yields 0 for every position.
func PercentageOfPointsByPosition(snapshots []models.TeamSnapshot, week int, positions, excludeSlots []string) {
	excluded := slotSet(excludeSlots)

	for i := range snapshots {
		snapshot := &snapshots[i]
		snapshot.Percentages = nil

		teamTotal := 0.0
		for _, entry := range snapshot.Lineup {
			if excluded[entry.Slot] {
				continue
			}
			if stats, ok := entry.Stats[week]; ok {
				teamTotal += stats.Points
			}
		}

		for _, position := range positions {
			positionTotal := 0.0
			for _, entry := range snapshot.Lineup {
				if entry.Position != position || excluded[entry.Slot] {
					continue
				}
				if stats, ok := entry.Stats[week]; ok {
					positionTotal += stats.Points
				}
			}

			percentage := 0.0
			if teamTotal != 0 {
				percentage = positionTotal / teamTotal * 100
			}
			snapshot.Percentages = append(snapshot.Percentages, models.PositionValue{
				Position: position,
				Value:    round2(percentage),
			})
		}
	}
}

// PowerRankings joins the provider's ranking computation back to the
// snapshots by team identity. The provider returns rankings in
// arbitrary order, so the join key is the team ID, never the column
// index. A ranking for a team with no snapshot is a provider
// inconsistency.
func (e *Engine) PowerRankings(snapshots []models.TeamSnapshot, week int) error {
	rankings, err := e.provider.PowerRankings(week)
	if err != nil {
		return fmt.Errorf("fetching power rankings for week %d: %w", week, err)
	}

	byTeam := make(map[int]*models.TeamSnapshot, len(snapshots))
	for i := range snapshots {
		byTeam[snapshots[i].Team.ID] = &snapshots[i]
	}

	for _, ranking := range rankings {
		snapshot, ok := byTeam[ranking.Team.ID]
		if !ok {
			return &UnknownTeamError{TeamID: ranking.Team.ID, TeamName: ranking.Team.Name, Week: week}
		}
		score := ranking.Score
		snapshot.PowerRanking = &score
	}

	return nil
}

// ProjectionDelta fills each snapshot's over/under value: actual score
// minus projected score.
func ProjectionDelta(snapshots []models.TeamSnapshot) {
	for i := range snapshots {
		delta := round2(snapshots[i].Score - snapshots[i].Projected)
		snapshots[i].ProjectionDelta = &delta
	}
}

// SortByColumn orders snapshots by column index ascending. This is the
// canonical ordering for every positional zip; provider iteration order
// is never assumed stable.
func SortByColumn(snapshots []models.TeamSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ColumnIndex < snapshots[j].ColumnIndex
	})
}

func slotSet(slots []string) map[string]bool {
	set := make(map[string]bool, len(slots))
	for _, slot := range slots {
		set[slot] = true
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
