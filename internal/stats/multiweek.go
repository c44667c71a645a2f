package stats

import (
	"fmt"

	"github.com/omarshaarawi/statsheet/internal/models"
)

// WeekRange returns the inclusive sequence [first..last].
func WeekRange(first, last int) []int {
	if last < first {
		return nil
	}
	weeks := make([]int, 0, last-first+1)
	for w := first; w <= last; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

// AveragePointsPerPositionRange runs the single-week average transform
// for every week in the range and returns snapshots (ordered by column
// index) whose Averages hold the per-week mean.
func (e *Engine) AveragePointsPerPositionRange(weeks []int, positions, excludeSlots []string) ([]models.TeamSnapshot, error) {
	return e.foldPositionMetric(weeks,
		func(snapshots []models.TeamSnapshot, week int) {
			AveragePointsPerPosition(snapshots, week, positions, excludeSlots)
		},
		func(s *models.TeamSnapshot) *[]models.PositionValue { return &s.Averages },
	)
}

// PercentageOfPointsByPositionRange is the multi-week counterpart of
// PercentageOfPointsByPosition.
func (e *Engine) PercentageOfPointsByPositionRange(weeks []int, positions, excludeSlots []string) ([]models.TeamSnapshot, error) {
	return e.foldPositionMetric(weeks,
		func(snapshots []models.TeamSnapshot, week int) {
			PercentageOfPointsByPosition(snapshots, week, positions, excludeSlots)
		},
		func(s *models.TeamSnapshot) *[]models.PositionValue { return &s.Percentages },
	)
}

// foldPositionMetric threads an explicit accumulator through each
// week's reduction step: compute the single-week tables, sort by column
// index so rows zip positionally, then element-wise sum into the
// accumulator. Any length mismatch between a week's table and the
// running total is a hard error for that team-week.
func (e *Engine) foldPositionMetric(
	weeks []int,
	compute func(snapshots []models.TeamSnapshot, week int),
	table func(s *models.TeamSnapshot) *[]models.PositionValue,
) ([]models.TeamSnapshot, error) {
	if len(weeks) == 0 {
		return nil, fmt.Errorf("empty week range")
	}

	var acc []models.TeamSnapshot
	for _, week := range weeks {
		snapshots, err := e.TeamSnapshots(week)
		if err != nil {
			return nil, err
		}
		// The final division is by len(weeks), so a week contributing
		// nothing would deflate every team's value.
		if len(snapshots) == 0 {
			return nil, fmt.Errorf("week %d: no box scores", week)
		}
		compute(snapshots, week)
		SortByColumn(snapshots)

		if acc == nil {
			acc = snapshots
			continue
		}

		if len(snapshots) != len(acc) {
			return nil, &ShapeMismatchError{Week: week, Got: len(snapshots), Want: len(acc)}
		}
		for i := range snapshots {
			if snapshots[i].Team.ID != acc[i].Team.ID {
				return nil, &UnknownTeamError{TeamID: snapshots[i].Team.ID, TeamName: snapshots[i].Team.Name, Week: week}
			}
			weekTable := *table(&snapshots[i])
			accTable := *table(&acc[i])
			if len(weekTable) != len(accTable) {
				return nil, &ShapeMismatchError{
					Team: snapshots[i].Team.Name,
					Week: week,
					Got:  len(weekTable),
					Want: len(accTable),
				}
			}
			for j := range accTable {
				accTable[j].Value += weekTable[j].Value
			}
		}
	}

	n := float64(len(weeks))
	for i := range acc {
		accTable := *table(&acc[i])
		for j := range accTable {
			accTable[j].Value = round2(accTable[j].Value / n)
		}
	}

	return acc, nil
}

// PowerRankingRange averages the provider's weekly power-ranking score
// per team across the range.
func (e *Engine) PowerRankingRange(weeks []int) ([]models.TeamSnapshot, error) {
	return e.foldScalar(weeks,
		func(snapshots []models.TeamSnapshot, week int) error {
			return e.PowerRankings(snapshots, week)
		},
		func(s *models.TeamSnapshot) **float64 { return &s.PowerRanking },
		"power ranking",
	)
}

// ProjectionDeltaRange averages the weekly over/under delta per team
// across the range.
func (e *Engine) ProjectionDeltaRange(weeks []int) ([]models.TeamSnapshot, error) {
	return e.foldScalar(weeks,
		func(snapshots []models.TeamSnapshot, week int) error {
			ProjectionDelta(snapshots)
			return nil
		},
		func(s *models.TeamSnapshot) **float64 { return &s.ProjectionDelta },
		"projection delta",
	)
}

func (e *Engine) foldScalar(
	weeks []int,
	compute func(snapshots []models.TeamSnapshot, week int) error,
	value func(s *models.TeamSnapshot) **float64,
	metric string,
) ([]models.TeamSnapshot, error) {
	if len(weeks) == 0 {
		return nil, fmt.Errorf("empty week range")
	}

	var acc []models.TeamSnapshot
	for _, week := range weeks {
		snapshots, err := e.TeamSnapshots(week)
		if err != nil {
			return nil, err
		}
		if len(snapshots) == 0 {
			return nil, fmt.Errorf("week %d: no box scores", week)
		}
		if err := compute(snapshots, week); err != nil {
			return nil, err
		}
		SortByColumn(snapshots)

		for i := range snapshots {
			if *value(&snapshots[i]) == nil {
				return nil, fmt.Errorf("week %d: no %s for team %q", week, metric, snapshots[i].Team.Name)
			}
		}

		if acc == nil {
			acc = snapshots
			continue
		}

		if len(snapshots) != len(acc) {
			return nil, &ShapeMismatchError{Week: week, Got: len(snapshots), Want: len(acc)}
		}
		for i := range snapshots {
			if snapshots[i].Team.ID != acc[i].Team.ID {
				return nil, &UnknownTeamError{TeamID: snapshots[i].Team.ID, TeamName: snapshots[i].Team.Name, Week: week}
			}
			**value(&acc[i]) += **value(&snapshots[i])
		}
	}

	n := float64(len(weeks))
	for i := range acc {
		v := *value(&acc[i])
		*v = round2(*v / n)
	}

	return acc, nil
}
