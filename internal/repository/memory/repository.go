package memory

import (
	"sync"

	"github.com/omarshaarawi/statsheet/internal/models"
)

// Repository caches league metadata and the canonical team order for
// the duration of a report run, so they are fetched from the provider
// once and reused by every section.
type Repository struct {
	metadata *models.LeagueMetadata
	teams    []models.Team
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

func (r *Repository) SaveTeams(teams []models.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = teams
}

func (r *Repository) GetTeams() []models.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.teams
}
