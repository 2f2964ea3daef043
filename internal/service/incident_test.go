package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/notify"
	notify_mocks "github.com/shenikar/disaster_incident_system/internal/notify/mocks"
	"github.com/shenikar/disaster_incident_system/internal/observability"
	"github.com/shenikar/disaster_incident_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	repo      *mocks.MockIncidentRepository
	cache     *mocks.MockIncidentCache
	publisher *notify_mocks.MockPublisher
	metrics   *observability.Metrics
	clock     *clockwork.FakeClock
}

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		repo:      mocks.NewMockIncidentRepository(ctrl),
		cache:     mocks.NewMockIncidentCache(ctrl),
		publisher: notify_mocks.NewMockPublisher(ctrl),
		metrics:   observability.NewMetricsForTesting(),
		clock:     clockwork.NewFakeClockAt(time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewIncidentService(deps.repo, deps.cache, deps.publisher, officialOnly, deps.clock, deps.metrics, logger)
	return svc.(*incidentService), deps
}

var official = &models.Caller{ID: "officer-1", Role: models.RoleOfficial}

func TestCreateFullReport_Success(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	newID := uuid.New()

	// Ожидания
	deps.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			assert.Equal(t, "Bridge collapse", inc.Title)
			inc.ID = newID
			inc.IncidentStatus = models.StatusReported
			inc.DispatchStatus = models.DispatchPending
			return nil
		}).
		Times(1)
	deps.publisher.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event notify.IncidentEvent) error {
			assert.Equal(t, notify.EventIncidentCreated, event.Type)
			assert.Equal(t, newID, event.IncidentID)
			assert.Empty(t, event.ActorID)
			return nil
		}).
		Times(1)

	// Действие
	inc, err := service.CreateFullReport(ctx, validFullReport(), nil)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, newID, inc.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.Operations.WithLabelValues("create_full_report", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.EventsPublished.WithLabelValues("incident.created", "ok")))
}

func TestCreateFullReport_ValidationSkipsRepository(t *testing.T) {
	service, deps := newTestIncidentService(t)
	r := validFullReport()
	r.Title = ""

	_, err := service.CreateFullReport(context.Background(), r, nil)

	requireValidationError(t, err, "title")
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.Operations.WithLabelValues("create_full_report", "invalid")))
}

func TestCreateEmergencyReport_PublishFailureDoesNotFail(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	deps.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	inc, err := service.CreateEmergencyReport(ctx, models.EmergencyReport{
		PhoneNumber:  "112",
		IncidentType: "Avalanche",
		Location:     "Manang",
	})

	require.NoError(t, err)
	assert.Equal(t, "EMERGENCY: Avalanche", inc.Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.EventsPublished.WithLabelValues("incident.created", "error")))
}

func TestCreateEmergencyReport_RepositoryError(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	dbErr := &models.PersistenceError{Op: "create", Err: errors.New("connection refused")}

	deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(dbErr).Times(1)

	_, err := service.CreateEmergencyReport(ctx, models.EmergencyReport{PhoneNumber: "112", IncidentType: "Fire", Location: "Patan"})

	var persistErr *models.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "create", persistErr.Op)
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Title: "Тестовый инцидент из кеша"}

	// Ожидания
	deps.cache.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(expectedIncident, nil).Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Title: "Тестовый инцидент из БД"}

	deps.cache.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil).Times(1)
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	deps.cache.EXPECT().SetIncidentCache(ctx, expectedIncident).Return(nil).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_CacheErrorFallsBackToDB(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID}

	deps.cache.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, errors.New("cache down")).Times(1)
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	deps.cache.EXPECT().SetIncidentCache(ctx, expectedIncident).Return(errors.New("cache down")).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	deps.cache.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil).Times(1)
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(nil, models.ErrNotFound).Times(1)

	_, err := service.GetIncident(ctx, incidentID)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.Operations.WithLabelValues("get", "not_found")))
}

func TestListIncidents(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	critical := models.LevelCritical
	expected := []*models.Incident{{ID: uuid.New()}, {ID: uuid.New()}}

	deps.repo.EXPECT().
		List(ctx, models.IncidentFilter{SeverityLevel: &critical}).
		Return(expected, nil).
		Times(1)

	incidents, err := service.ListIncidents(ctx, models.ListCriteria{SeverityLevel: "CRITICAL"})

	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}

func TestListIncidents_UnknownCriteria(t *testing.T) {
	service, _ := newTestIncidentService(t)

	_, err := service.ListIncidents(context.Background(), models.ListCriteria{IncidentStatus: "ARCHIVED"})

	requireValidationError(t, err, "status")
}

func TestUpdateIncident_Success(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	current := &models.Incident{ID: id, IncidentStatus: models.StatusReported, DispatchStatus: models.DispatchPending}
	updated := &models.Incident{ID: id, IncidentStatus: models.StatusResponding, DispatchStatus: models.DispatchDispatched}
	patch := models.IncidentPatch{
		IncidentStatus: ptr(models.StatusResponding),
		DispatchStatus: ptr(models.DispatchDispatched),
	}

	gomock.InOrder(
		deps.repo.EXPECT().GetByID(ctx, id).Return(current, nil),
		deps.repo.EXPECT().Update(ctx, id, patch).Return(updated, nil),
		deps.cache.EXPECT().InvalidateIncidentCache(ctx, id).Return(nil),
		deps.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, event notify.IncidentEvent) error {
			assert.Equal(t, notify.EventIncidentUpdated, event.Type)
			assert.Equal(t, "officer-1", event.ActorID)
			assert.Equal(t, models.StatusReported, event.PreviousIncidentStatus)
			assert.Equal(t, models.DispatchPending, event.PreviousDispatchStatus)
			return nil
		}),
	)

	inc, err := service.UpdateIncident(ctx, id, patch, official)

	require.NoError(t, err)
	assert.Equal(t, updated, inc)
}

func TestUpdateIncident_ResolveStampsDate(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	current := &models.Incident{ID: id, IncidentStatus: models.StatusResponding, DispatchStatus: models.DispatchOnScene}

	deps.repo.EXPECT().GetByID(ctx, id).Return(current, nil)
	deps.repo.EXPECT().Update(ctx, id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, p models.IncidentPatch) (*models.Incident, error) {
			require.NotNil(t, p.ResolutionDate)
			assert.True(t, deps.clock.Now().Equal(*p.ResolutionDate))
			out := current.Clone()
			p.Apply(out)
			return out, nil
		})
	deps.cache.EXPECT().InvalidateIncidentCache(ctx, id).Return(nil)
	deps.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	inc, err := service.UpdateIncident(ctx, id, models.IncidentPatch{IncidentStatus: ptr(models.StatusResolved)}, official)

	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, inc.IncidentStatus)
}

func TestUpdateIncident_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		caller *models.Caller
	}{
		{"anonymous", nil},
		{"citizen", &models.Caller{ID: "u1", Role: "citizen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Хранилище не должно вызываться вовсе
			service, deps := newTestIncidentService(t)

			_, err := service.UpdateIncident(context.Background(), uuid.New(), models.IncidentPatch{Title: ptr("x")}, tt.caller)

			var authErr *models.AuthorizationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.Operations.WithLabelValues("update", "forbidden")))
		})
	}
}

func TestUpdateIncident_InvalidPatchSkipsRepository(t *testing.T) {
	service, _ := newTestIncidentService(t)

	_, err := service.UpdateIncident(context.Background(), uuid.New(), models.IncidentPatch{Casualties: ptr(-5)}, official)

	requireValidationError(t, err, "casualties")
}

func TestUpdateIncident_BackwardTransition(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	current := &models.Incident{ID: id, IncidentStatus: models.StatusResponding, DispatchStatus: models.DispatchPending}

	deps.repo.EXPECT().GetByID(ctx, id).Return(current, nil)

	_, err := service.UpdateIncident(ctx, id, models.IncidentPatch{IncidentStatus: ptr(models.StatusReported)}, official)

	var trErr *models.InvalidTransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "RESPONDING", trErr.From)
	assert.Equal(t, "REPORTED", trErr.To)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.RejectedTransitions.WithLabelValues("incident_status")))
}

func TestUpdateIncident_NotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()

	deps.repo.EXPECT().GetByID(ctx, id).Return(nil, models.ErrNotFound)

	_, err := service.UpdateIncident(ctx, id, models.IncidentPatch{}, official)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteIncident_Success(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	deleted := &models.Incident{ID: id, IncidentStatus: models.StatusResolved}

	deps.repo.EXPECT().Delete(ctx, id).Return(deleted, nil)
	deps.cache.EXPECT().InvalidateIncidentCache(ctx, id).Return(nil)
	deps.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, event notify.IncidentEvent) error {
		assert.Equal(t, notify.EventIncidentDeleted, event.Type)
		assert.Equal(t, id, event.IncidentID)
		return nil
	})

	require.NoError(t, service.DeleteIncident(ctx, id, official))
}

func TestDeleteIncident_NotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()

	deps.repo.EXPECT().Delete(ctx, id).Return(nil, models.ErrNotFound)

	err := service.DeleteIncident(ctx, id, official)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteIncident_Unauthorized(t *testing.T) {
	service, _ := newTestIncidentService(t)

	err := service.DeleteIncident(context.Background(), uuid.New(), &models.Caller{ID: "u1", Role: "citizen"})

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "ok", outcomeOf(nil))
	assert.Equal(t, "invalid", outcomeOf(&models.ValidationError{}))
	assert.Equal(t, "rejected_transition", outcomeOf(&models.InvalidTransitionError{}))
	assert.Equal(t, "forbidden", outcomeOf(&models.AuthorizationError{}))
	assert.Equal(t, "not_found", outcomeOf(fmt.Errorf("wrapped: %w", models.ErrNotFound)))
	assert.Equal(t, "error", outcomeOf(errors.New("boom")))
}
