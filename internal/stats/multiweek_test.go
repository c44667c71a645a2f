package stats

import (
	"errors"
	"testing"

	"github.com/omarshaarawi/statsheet/internal/models"
)

func twoWeekProvider() *fakeProvider {
	return &fakeProvider{
		teams: []models.Team{teamA, teamB},
		boxScores: map[int][]models.BoxScore{
			1: {{
				Week: 1,
				Home: models.BoxScoreSide{
					Team:      models.Team{ID: teamA.ID},
					Lineup:    []models.LineupEntry{entry("QB", "QB", 1, 20)},
					Projected: 90,
					Score:     100,
				},
				Away: models.BoxScoreSide{
					Team:      models.Team{ID: teamB.ID},
					Lineup:    []models.LineupEntry{entry("QB", "QB", 1, 10)},
					Projected: 80,
					Score:     70,
				},
			}},
			// Week 2 swaps home and away, so positional alignment has
			// to come from the column-index sort, not provider order.
			2: {{
				Week: 2,
				Home: models.BoxScoreSide{
					Team:      models.Team{ID: teamB.ID},
					Lineup:    []models.LineupEntry{entry("QB", "QB", 2, 16)},
					Projected: 85,
					Score:     95,
				},
				Away: models.BoxScoreSide{
					Team:      models.Team{ID: teamA.ID},
					Lineup:    []models.LineupEntry{entry("QB", "QB", 2, 10)},
					Projected: 100,
					Score:     90,
				},
			}},
		},
	}
}

func TestAverageRangeSingleWeekIdentity(t *testing.T) {
	engine := NewEngine(twoWeekProvider())

	multi, err := engine.AveragePointsPerPositionRange([]int{1}, []string{"QB"}, nil)
	if err != nil {
		t.Fatalf("AveragePointsPerPositionRange: %v", err)
	}

	single, err := engine.TeamSnapshots(1)
	if err != nil {
		t.Fatal(err)
	}
	AveragePointsPerPosition(single, 1, []string{"QB"}, nil)
	SortByColumn(single)

	for i := range multi {
		if multi[i].Averages[0].Value != single[i].Averages[0].Value {
			t.Errorf("team %s: range-of-one = %v, single week = %v",
				multi[i].Team.Name, multi[i].Averages[0].Value, single[i].Averages[0].Value)
		}
	}
}

func TestAverageRangeAveragesAcrossWeeks(t *testing.T) {
	engine := NewEngine(twoWeekProvider())

	snapshots, err := engine.AveragePointsPerPositionRange([]int{1, 2}, []string{"QB"}, nil)
	if err != nil {
		t.Fatalf("AveragePointsPerPositionRange: %v", err)
	}

	if len(snapshots) != 2 {
		t.Fatalf("got %d teams; want 2", len(snapshots))
	}
	// Results come back ordered by column index.
	if snapshots[0].Team.ID != teamA.ID || snapshots[1].Team.ID != teamB.ID {
		t.Fatalf("unexpected team order: %d, %d", snapshots[0].Team.ID, snapshots[1].Team.ID)
	}
	if got := snapshots[0].Averages[0].Value; got != 15 {
		t.Errorf("team A QB average = %v; want 15 ((20+10)/2)", got)
	}
	if got := snapshots[1].Averages[0].Value; got != 13 {
		t.Errorf("team B QB average = %v; want 13 ((10+16)/2)", got)
	}
}

func TestAverageRangeShapeMismatch(t *testing.T) {
	provider := twoWeekProvider()
	// Week 1: both teams roster a QB and a K. Week 2: team B loses its
	// kicker, so its metric table shrinks mid-range.
	provider.boxScores[1][0].Home.Lineup = []models.LineupEntry{
		entry("QB", "QB", 1, 20), entry("K", "K", 1, 8),
	}
	provider.boxScores[1][0].Away.Lineup = []models.LineupEntry{
		entry("QB", "QB", 1, 10), entry("K", "K", 1, 6),
	}
	provider.boxScores[2][0].Away.Lineup = []models.LineupEntry{
		entry("QB", "QB", 2, 10), entry("K", "K", 2, 7),
	}
	provider.boxScores[2][0].Home.Lineup = []models.LineupEntry{
		entry("QB", "QB", 2, 16),
	}

	engine := NewEngine(provider)

	_, err := engine.AveragePointsPerPositionRange([]int{1, 2}, []string{"QB", "K"}, nil)
	var mismatchErr *ShapeMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Fatalf("expected ShapeMismatchError; got %v", err)
	}
	if mismatchErr.Team != "Team B" || mismatchErr.Week != 2 {
		t.Errorf("ShapeMismatchError = %+v; want team B, week 2", mismatchErr)
	}
	if mismatchErr.Got != 1 || mismatchErr.Want != 2 {
		t.Errorf("ShapeMismatchError lengths = got %d want %d; expected 1 and 2",
			mismatchErr.Got, mismatchErr.Want)
	}
}

func TestPowerRankingRange(t *testing.T) {
	provider := twoWeekProvider()
	provider.rankings = map[int][]models.RankedTeam{
		1: {{Score: 10, Team: teamA}, {Score: 6, Team: teamB}},
		2: {{Score: 8, Team: teamA}, {Score: 4, Team: teamB}},
	}
	engine := NewEngine(provider)

	snapshots, err := engine.PowerRankingRange([]int{1, 2})
	if err != nil {
		t.Fatalf("PowerRankingRange: %v", err)
	}

	if got := *snapshots[0].PowerRanking; got != 9 {
		t.Errorf("team A ranking = %v; want 9", got)
	}
	if got := *snapshots[1].PowerRanking; got != 5 {
		t.Errorf("team B ranking = %v; want 5", got)
	}
}

func TestProjectionDeltaRange(t *testing.T) {
	engine := NewEngine(twoWeekProvider())

	snapshots, err := engine.ProjectionDeltaRange([]int{1, 2})
	if err != nil {
		t.Fatalf("ProjectionDeltaRange: %v", err)
	}

	// Team A: (100-90) and (90-100) average to 0. Team B: (70-80) and
	// (95-85) average to 0 as well.
	if got := *snapshots[0].ProjectionDelta; got != 0 {
		t.Errorf("team A delta = %v; want 0", got)
	}
	if got := *snapshots[1].ProjectionDelta; got != 0 {
		t.Errorf("team B delta = %v; want 0", got)
	}
}

func TestRangeRejectsWeekWithoutBoxScores(t *testing.T) {
	provider := twoWeekProvider()
	// A week yielding no matchups must fail loudly: silently skipping it
	// would still divide by the full range length.
	delete(provider.boxScores, 1)
	engine := NewEngine(provider)

	if _, err := engine.AveragePointsPerPositionRange([]int{1, 2}, []string{"QB"}, nil); err == nil {
		t.Error("expected error for a week with no box scores")
	}
	if _, err := engine.ProjectionDeltaRange([]int{1, 2}); err == nil {
		t.Error("expected error for a week with no box scores")
	}
}

func TestEmptyWeekRange(t *testing.T) {
	engine := NewEngine(twoWeekProvider())

	if _, err := engine.AveragePointsPerPositionRange(nil, []string{"QB"}, nil); err == nil {
		t.Error("expected error for empty week range")
	}
	if _, err := engine.PowerRankingRange(nil); err == nil {
		t.Error("expected error for empty week range")
	}
}

func TestWeekRange(t *testing.T) {
	got := WeekRange(1, 3)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("WeekRange(1, 3) = %v", got)
	}
	if got := WeekRange(3, 1); got != nil {
		t.Errorf("WeekRange(3, 1) = %v; want nil", got)
	}
}
