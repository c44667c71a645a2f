package fantasy

import (
	"fmt"
	"time"

	"github.com/omarshaarawi/statsheet/internal/api/espn"
	"github.com/omarshaarawi/statsheet/internal/models"
	"github.com/omarshaarawi/statsheet/internal/repository/memory"
)

// API fronts the ESPN provider for the aggregation engine. League
// metadata and the canonical team order are cached in the repository so
// repeated section queries within a run do not refetch them.
type API struct {
	espnAPI *espn.API
	repo    *memory.Repository
}

func NewAPI(espnAPI *espn.API, repo *memory.Repository) *API {
	return &API{espnAPI: espnAPI, repo: repo}
}

func (a *API) CurrentWeek() (int, error) {
	metadata := a.repo.GetMetadata()
	if metadata == nil || time.Since(metadata.LastUpdated) > 24*time.Hour {
		newMetadata, err := a.espnAPI.GetLeagueMetadata()
		if err != nil {
			return 0, fmt.Errorf("fetching league metadata: %w", err)
		}
		a.repo.SaveMetadata(newMetadata)
		metadata = newMetadata
	}
	return metadata.CurrentWeek, nil
}

// Teams returns the canonical team order, stable across calls within a
// run.
func (a *API) Teams() ([]models.Team, error) {
	if teams := a.repo.GetTeams(); teams != nil {
		return teams, nil
	}
	teams, err := a.espnAPI.GetTeams()
	if err != nil {
		return nil, err
	}
	a.repo.SaveTeams(teams)
	return teams, nil
}

func (a *API) BoxScores(week int) ([]models.BoxScore, error) {
	return a.espnAPI.GetBoxScores(week)
}

func (a *API) PowerRankings(week int) ([]models.RankedTeam, error) {
	teams, err := a.Teams()
	if err != nil {
		return nil, err
	}
	return a.espnAPI.GetPowerRankings(week, teams)
}
