package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_incident_system/internal/models"
)

// EventType - вид изменения инцидента
type EventType string

const (
	EventIncidentCreated EventType = "incident.created"
	EventIncidentUpdated EventType = "incident.updated"
	EventIncidentDeleted EventType = "incident.deleted"
)

// IncidentEvent - событие для маршрутизации сообщений к спасательным командам
type IncidentEvent struct {
	Type                   EventType             `json:"type"`
	IncidentID             uuid.UUID             `json:"incident_id"`
	IncidentType           models.IncidentType   `json:"incident_type"`
	SeverityLevel          models.Level          `json:"severity_level"`
	IncidentStatus         models.IncidentStatus `json:"incident_status"`
	DispatchStatus         models.DispatchStatus `json:"dispatch_status"`
	PreviousIncidentStatus models.IncidentStatus `json:"previous_incident_status,omitempty"`
	PreviousDispatchStatus models.DispatchStatus `json:"previous_dispatch_status,omitempty"`
	ActorID                string                `json:"actor_id,omitempty"`
	Timestamp              time.Time             `json:"timestamp"`
	Incident               *models.Incident      `json:"incident,omitempty"`
}

// NewIncidentEvent собирает событие по состоянию инцидента после изменения
func NewIncidentEvent(t EventType, inc *models.Incident, actorID string, at time.Time) IncidentEvent {
	return IncidentEvent{
		Type:           t,
		IncidentID:     inc.ID,
		IncidentType:   inc.IncidentType,
		SeverityLevel:  inc.SeverityLevel,
		IncidentStatus: inc.IncidentStatus,
		DispatchStatus: inc.DispatchStatus,
		ActorID:        actorID,
		Timestamp:      at,
		Incident:       inc,
	}
}

//go:generate mockgen -source=event.go -destination=mocks/publisher_mock.go -package=mocks

// Publisher - интерфейс для публикации событий инцидентов
type Publisher interface {
	Publish(ctx context.Context, event IncidentEvent) error
}

// NopPublisher отбрасывает события (EVENTS_SINK=none)
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, IncidentEvent) error { return nil }
