package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/service"
)

// MemoryIncidentRepository хранит инциденты в памяти процесса (STORE_DRIVER=memory).
// Наружу отдаются только копии записей.
type MemoryIncidentRepository struct {
	mu        sync.RWMutex
	incidents map[uuid.UUID]*models.Incident
	clock     clockwork.Clock
}

func NewMemoryIncidentRepository(clock clockwork.Clock) service.IncidentRepository {
	return newMemoryIncidentRepository(clock)
}

func newMemoryIncidentRepository(clock clockwork.Clock) *MemoryIncidentRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryIncidentRepository{
		incidents: make(map[uuid.UUID]*models.Incident),
		clock:     clock,
	}
}

func (r *MemoryIncidentRepository) Create(_ context.Context, incident *models.Incident) error {
	now := r.clock.Now().UTC()

	stored := incident.Clone()
	stored.ID = uuid.New()
	stored.IncidentStatus = models.StatusReported
	stored.DispatchStatus = models.DispatchPending
	if stored.PriorityLevel == "" {
		stored.PriorityLevel = models.LevelMedium
	}
	stored.AssistanceNeeded = nonNilAssistance(stored.AssistanceNeeded)
	stored.Photos = nonNil(stored.Photos)
	stored.TeamsDispatched = nonNil(stored.TeamsDispatched)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.mu.Lock()
	r.incidents[stored.ID] = stored
	r.mu.Unlock()

	*incident = *stored.Clone()
	return nil
}

func (r *MemoryIncidentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	return inc.Clone(), nil
}

func (r *MemoryIncidentRepository) Update(_ context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s not found for update: %w", id, models.ErrNotFound)
	}
	patch.Apply(inc)
	inc.UpdatedAt = r.clock.Now().UTC()
	return inc.Clone(), nil
}

func (r *MemoryIncidentRepository) Delete(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s not found for delete: %w", id, models.ErrNotFound)
	}
	delete(r.incidents, id)
	return inc, nil
}

func (r *MemoryIncidentRepository) List(_ context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	r.mu.RLock()
	incidents := make([]*models.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		if filter.Matches(inc) {
			incidents = append(incidents, inc.Clone())
		}
	}
	r.mu.RUnlock()

	models.SortNewestFirst(incidents)
	return incidents, nil
}

func (r *MemoryIncidentRepository) CountByStatus(_ context.Context) (map[models.IncidentStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.IncidentStatus]int)
	for _, inc := range r.incidents {
		counts[inc.IncidentStatus]++
	}
	return counts, nil
}

func nonNilAssistance(a []models.Assistance) []models.Assistance {
	if a == nil {
		return []models.Assistance{}
	}
	return a
}
