package observability

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/sirupsen/logrus"
)

// IncidentCounter - минимальный срез хранилища, нужный снимку
type IncidentCounter interface {
	CountByStatus(ctx context.Context) (map[models.IncidentStatus]int, error)
}

var trackedStatuses = []models.IncidentStatus{
	models.StatusReported,
	models.StatusInvestigating,
	models.StatusResponding,
	models.StatusResolved,
}

// StatusSnapshot периодически пересчитывает число инцидентов по статусам
type StatusSnapshot struct {
	store   IncidentCounter
	metrics *Metrics
	logger  *logrus.Logger
	cron    *cron.Cron
}

func NewStatusSnapshot(store IncidentCounter, metrics *Metrics, logger *logrus.Logger) *StatusSnapshot {
	return &StatusSnapshot{
		store:   store,
		metrics: metrics,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start регистрирует задачу по расписанию (например "@every 1m") и запускает планировщик
func (s *StatusSnapshot) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to refresh incident status snapshot")
		}
	}); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", schedule).Info("Incident status snapshot started")
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *StatusSnapshot) Stop() {
	<-s.cron.Stop().Done()
}

// Refresh выставляет gauge по каждому статусу; отсутствующий в хранилище статус - 0
func (s *StatusSnapshot) Refresh(ctx context.Context) error {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count incidents for snapshot: %w", err)
	}

	for _, st := range trackedStatuses {
		s.metrics.IncidentsByStatus.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
	return nil
}
