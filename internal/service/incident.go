package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/notify"
	"github.com/shenikar/disaster_incident_system/internal/observability"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/incident_mock.go -package=mocks

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	CountByStatus(ctx context.Context) (map[models.IncidentStatus]int, error)
}

// IncidentCache определяет контракт кэша инцидентов по id
type IncidentCache interface {
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateFullReport(ctx context.Context, report models.FullReport, caller *models.Caller) (*models.Incident, error)
	CreateEmergencyReport(ctx context.Context, report models.EmergencyReport) (*models.Incident, error)
	ListIncidents(ctx context.Context, criteria models.ListCriteria) ([]*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	UpdateIncident(ctx context.Context, id uuid.UUID, patch models.IncidentPatch, caller *models.Caller) (*models.Incident, error)
	DeleteIncident(ctx context.Context, id uuid.UUID, caller *models.Caller) error
}

type incidentService struct {
	repo      IncidentRepository
	cache     IncidentCache
	publisher notify.Publisher
	ingest    *IngestValidator
	lifecycle *LifecycleEngine
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

// NewIncidentService собирает сервис. cache может быть nil, тогда чтения идут мимо кэша.
func NewIncidentService(
	repo IncidentRepository,
	cache IncidentCache,
	publisher notify.Publisher,
	authorizer Authorizer,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) IncidentService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &incidentService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		ingest:    NewIngestValidator(),
		lifecycle: NewLifecycleEngine(authorizer, clock),
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateFullReport создает инцидент из полной формы
func (s *incidentService) CreateFullReport(ctx context.Context, report models.FullReport, caller *models.Caller) (*models.Incident, error) {
	defer s.observe("create_full_report", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "CreateFullReport",
		"anonymous": caller.IsAnonymous(),
	})
	log.Info("Attempting to create a new incident")

	incident, err := s.ingest.NormalizeFullReport(report, caller)
	if err != nil {
		s.count("create_full_report", err)
		log.WithError(err).Warn("Rejected invalid incident report")
		return nil, err
	}
	return s.create(ctx, log, "create_full_report", incident, actorOf(caller))
}

// CreateEmergencyReport создает инцидент из короткой экстренной формы
func (s *incidentService) CreateEmergencyReport(ctx context.Context, report models.EmergencyReport) (*models.Incident, error) {
	defer s.observe("create_emergency_report", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateEmergencyReport",
	})
	log.Info("Attempting to create an emergency incident")

	incident, err := s.ingest.NormalizeEmergencyReport(report)
	if err != nil {
		s.count("create_emergency_report", err)
		log.WithError(err).Warn("Rejected invalid emergency report")
		return nil, err
	}
	return s.create(ctx, log, "create_emergency_report", incident, "")
}

func (s *incidentService) create(ctx context.Context, log *logrus.Entry, op string, incident *models.Incident, actorID string) (*models.Incident, error) {
	if err := s.repo.Create(ctx, incident); err != nil {
		s.count(op, err)
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	s.count(op, nil)

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	s.publish(ctx, log, notify.NewIncidentEvent(notify.EventIncidentCreated, incident, actorID, s.clock.Now().UTC()))
	return incident, nil
}

// ListIncidents возвращает все инциденты, подходящие под критерии, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, criteria models.ListCriteria) ([]*models.Incident, error) {
	defer s.observe("list", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "ListIncidents",
		"type":     criteria.IncidentType,
		"severity": criteria.SeverityLevel,
		"status":   criteria.IncidentStatus,
	})
	log.Info("Listing incidents")

	filter, err := BuildFilter(criteria)
	if err != nil {
		s.count("list", err)
		log.WithError(err).Warn("Rejected invalid list criteria")
		return nil, err
	}

	incidents, err := s.repo.List(ctx, filter)
	s.count("list", err)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// GetIncident получает инцидент по ID, сначала из кэша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	defer s.observe("get", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	if s.cache != nil {
		cached, err := s.cache.GetIncidentFromCache(ctx, id)
		if err != nil {
			log.WithError(err).Warn("Failed to read incident from cache")
		}
		if cached != nil {
			s.count("get", nil)
			log.Debug("Incident served from cache")
			return cached, nil
		}
	}

	incident, err := s.repo.GetByID(ctx, id)
	s.count("get", err)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetIncidentCache(ctx, incident); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}

	log.Info("Incident fetched successfully")
	return incident, nil
}

// UpdateIncident применяет частичное обновление: права, значения полей,
// затем переходы статусов относительно текущего состояния.
func (s *incidentService) UpdateIncident(ctx context.Context, id uuid.UUID, patch models.IncidentPatch, caller *models.Caller) (*models.Incident, error) {
	defer s.observe("update", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
		"caller_id":   actorOf(caller),
	})
	log.Info("Attempting to update incident")

	if err := s.lifecycle.Authorize(caller, models.ActionUpdateIncident); err != nil {
		s.count("update", err)
		log.WithError(err).Warn("Caller is not allowed to update incidents")
		return nil, err
	}
	if err := s.lifecycle.ValidatePatch(&patch); err != nil {
		s.count("update", err)
		log.WithError(err).Warn("Rejected invalid incident patch")
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.count("update", err)
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return nil, fmt.Errorf("service: could not load incident for update: %w", err)
	}

	if err := s.lifecycle.CheckTransition(current, &patch); err != nil {
		var transitionErr *models.InvalidTransitionError
		if errors.As(err, &transitionErr) && s.metrics != nil {
			s.metrics.RejectedTransitions.WithLabelValues(transitionErr.Field).Inc()
		}
		s.count("update", err)
		log.WithError(err).Warn("Rejected incident status change")
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	s.count("update", err)
	if err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}
	s.invalidate(ctx, log, id)

	log.Info("Incident updated successfully")
	event := notify.NewIncidentEvent(notify.EventIncidentUpdated, updated, caller.ID, s.clock.Now().UTC())
	if current.IncidentStatus != updated.IncidentStatus {
		event.PreviousIncidentStatus = current.IncidentStatus
	}
	if current.DispatchStatus != updated.DispatchStatus {
		event.PreviousDispatchStatus = current.DispatchStatus
	}
	s.publish(ctx, log, event)
	return updated, nil
}

// DeleteIncident безусловно удаляет инцидент; доступно только должностным лицам
func (s *incidentService) DeleteIncident(ctx context.Context, id uuid.UUID, caller *models.Caller) error {
	defer s.observe("delete", time.Now())
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
		"caller_id":   actorOf(caller),
	})
	log.Info("Attempting to delete incident")

	if err := s.lifecycle.Authorize(caller, models.ActionDeleteIncident); err != nil {
		s.count("delete", err)
		log.WithError(err).Warn("Caller is not allowed to delete incidents")
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	s.count("delete", err)
	if err != nil {
		log.WithError(err).Warn("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}
	s.invalidate(ctx, log, id)

	log.Info("Incident deleted successfully")
	s.publish(ctx, log, notify.NewIncidentEvent(notify.EventIncidentDeleted, deleted, caller.ID, s.clock.Now().UTC()))
	return nil
}

func (s *incidentService) invalidate(ctx context.Context, log *logrus.Entry, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

// publish отправляет событие; сбой доставки не влияет на результат операции
func (s *incidentService) publish(ctx context.Context, log *logrus.Entry, event notify.IncidentEvent) {
	err := s.publisher.Publish(ctx, event)
	if s.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		s.metrics.EventsPublished.WithLabelValues(string(event.Type), result).Inc()
	}
	if err != nil {
		log.WithError(err).WithField("event_type", event.Type).Error("Failed to publish incident event")
	}
}

func (s *incidentService) count(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Operations.WithLabelValues(op, outcomeOf(err)).Inc()
}

func (s *incidentService) observe(op string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// outcomeOf сводит ошибку к метке для метрик
func outcomeOf(err error) string {
	var (
		validationErr *models.ValidationError
		transitionErr *models.InvalidTransitionError
		authErr       *models.AuthorizationError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &transitionErr):
		return "rejected_transition"
	case errors.As(err, &authErr):
		return "forbidden"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func actorOf(caller *models.Caller) string {
	if caller.IsAnonymous() {
		return ""
	}
	return caller.ID
}
