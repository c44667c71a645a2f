package espn

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/omarshaarawi/statsheet/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := url.Values{"view": {"mSettings"}}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

// GetTeams returns the league's teams in canonical order. ESPN does not
// guarantee response ordering, so the order is fixed by sorting on team
// ID; every caller that derives report columns relies on this being
// stable for the whole season.
func (a *API) GetTeams() ([]models.Team, error) {
	var leagueResponse models.LeagueResponse
	params := url.Values{"view": {"mTeam"}}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	teams := make([]models.Team, len(leagueResponse.Teams))
	for i, team := range leagueResponse.Teams {
		teams[i] = models.Team{
			ID:           team.ID,
			Name:         team.Name,
			Abbreviation: team.Abbreviation,
		}
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].ID < teams[j].ID
	})

	return teams, nil
}

// GetBoxScores returns one BoxScore per matchup for the given week,
// including both lineups with per-week actual points.
func (a *API) GetBoxScores(week int) ([]models.BoxScore, error) {
	scoreboard, err := a.getScoreboard([]int{week}, week)
	if err != nil {
		return nil, fmt.Errorf("fetching box scores: %w", err)
	}

	var boxScores []models.BoxScore
	for _, match := range scoreboard.Schedule {
		boxScores = append(boxScores, models.BoxScore{
			Week: week,
			Home: buildSide(match.Home),
			Away: buildSide(match.Away),
		})
	}

	return boxScores, nil
}

// buildSide carries only the team ID; full team identity is resolved
// against the canonical team order by the consumer.
func buildSide(ts models.TeamScore) models.BoxScoreSide {
	score, projected := getScoreAndProjected(ts)
	side := models.BoxScoreSide{
		Team:      models.Team{ID: ts.TeamID},
		Score:     score,
		Projected: projected,
	}

	for _, entry := range ts.RosterForCurrentScoringPeriod.Entries {
		player := entry.PlayerPoolEntry.Player
		lineupEntry := models.LineupEntry{
			PlayerName: player.FullName,
			Position:   getPositionString(player.DefaultPositionID),
			Slot:       getLineupSlotString(entry.LineupSlotID),
			Stats:      make(map[int]models.PlayerStats),
		}
		for _, stat := range player.Stats {
			if stat.StatSourceID == 0 {
				lineupEntry.Stats[stat.ScoringPeriodID] = models.PlayerStats{Points: stat.AppliedTotal}
			}
		}
		side.Lineup = append(side.Lineup, lineupEntry)
	}

	return side
}

func getScoreAndProjected(teamScore models.TeamScore) (float64, float64) {
	score := teamScore.TotalPointsLive
	if score == 0 {
		score = teamScore.TotalPoints
	}
	projected := teamScore.TotalProjectedPointsLive
	return math.Round(score*100) / 100, math.Round(projected*100) / 100
}

func (a *API) getScoreboard(matchupPeriods []int, scoringPeriod int) (*models.ScoreboardResponse, error) {
	var scoreboardResponse models.ScoreboardResponse

	params := url.Values{
		"view":            {"mMatchup", "mMatchupScore"},
		"scoringPeriodId": {strconv.Itoa(scoringPeriod)},
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": matchupPeriods,
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(a.leagueEndpoint(), params, headers, &scoreboardResponse); err != nil {
		return nil, err
	}

	return &scoreboardResponse, nil
}

// GetPowerRankings computes per-team power-ranking scores through the
// given week. Teams are passed in by the caller, which already holds
// the cached canonical list. Rankings are returned in no particular
// order; callers join them back to teams by identity.
func (a *API) GetPowerRankings(week int, teams []models.Team) ([]models.RankedTeam, error) {
	periods := make([]int, 0, week)
	for w := 1; w <= week; w++ {
		periods = append(periods, w)
	}

	scoreboard, err := a.getScoreboard(periods, week)
	if err != nil {
		return nil, fmt.Errorf("fetching results for power rankings: %w", err)
	}

	return rankTeams(teams, scoreboard.Schedule, week), nil
}

// rankTeams blends two-step dominance with average score and average
// margin of victory: 0.8*dominance + 0.15*avgScore + 0.05*avgMargin.
// Two-step dominance is the row sum of W + W*W, where W counts
// head-to-head wins (ties count 0.5 for each side).
func rankTeams(teams []models.Team, schedule []models.MatchupScore, week int) []models.RankedTeam {
	n := len(teams)
	indexByID := make(map[int]int, n)
	for i, t := range teams {
		indexByID[t.ID] = i
	}

	wins := make([][]float64, n)
	for i := range wins {
		wins[i] = make([]float64, n)
	}
	totalScore := make([]float64, n)
	totalMargin := make([]float64, n)

	for _, match := range schedule {
		if match.MatchupPeriodID > week || match.Winner == "UNDECIDED" {
			continue
		}
		hi, ok := indexByID[match.Home.TeamID]
		if !ok {
			continue
		}
		ai, ok := indexByID[match.Away.TeamID]
		if !ok {
			continue
		}

		homeScore := match.Home.TotalPoints
		awayScore := match.Away.TotalPoints
		totalScore[hi] += homeScore
		totalScore[ai] += awayScore
		totalMargin[hi] += homeScore - awayScore
		totalMargin[ai] += awayScore - homeScore

		switch {
		case homeScore > awayScore:
			wins[hi][ai]++
		case awayScore > homeScore:
			wins[ai][hi]++
		default:
			wins[hi][ai] += 0.5
			wins[ai][hi] += 0.5
		}
	}

	dominance := twoStepDominance(wins)

	weeks := float64(week)
	ranked := make([]models.RankedTeam, n)
	for i, t := range teams {
		score := 0.8*dominance[i] + 0.15*totalScore[i]/weeks + 0.05*totalMargin[i]/weeks
		ranked[i] = models.RankedTeam{
			Score: math.Round(score*100) / 100,
			Team:  t,
		}
	}

	return ranked
}

func twoStepDominance(wins [][]float64) []float64 {
	n := len(wins)
	dominance := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dominance[i] += wins[i][j]
			for k := 0; k < n; k++ {
				dominance[i] += wins[i][k] * wins[k][j]
			}
		}
	}
	return dominance
}

func getPositionString(positionID int) string {
	positions := map[int]string{
		1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "D/ST",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}

func getLineupSlotString(slotID int) string {
	switch slotID {
	case 0:
		return "QB"
	case 2:
		return "RB"
	case 3:
		return "RB/WR"
	case 4:
		return "WR"
	case 5:
		return "WR/TE"
	case 6:
		return "TE"
	case 7:
		return "OP"
	case 16:
		return "D/ST"
	case 17:
		return "K"
	case 20:
		return "BE"
	case 21:
		return "IR"
	case 23:
		return "FLEX"
	default:
		return "Unknown"
	}
}
