//go:build integration

package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/repository"
	"github.com/shenikar/disaster_incident_system/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres поднимает PostgreSQL в контейнере и применяет миграции
func startPostgres(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("incidents"),
		tcpostgres.WithUsername("incidents"),
		tcpostgres.WithPassword("incidents"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", strings.Replace(dsn, "postgres://", "pgx5://", 1))
	require.NoError(t, err, "create migrate instance")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err, "apply migrations")
	}

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func sampleIncident(title string, sev models.Level) *models.Incident {
	gps := "27.7172,85.324"
	return &models.Incident{
		Title:            title,
		Description:      "Road blocked by debris",
		Location:         "Kathmandu",
		GPSCoordinates:   &gps,
		IncidentType:     models.TypeLandslide,
		SeverityLevel:    sev,
		ReporterName:     "Maya",
		ReporterPhone:    "+9779800000002",
		AssistanceNeeded: []models.Assistance{models.AssistanceMedical, models.AssistanceRescue},
		AreaAccessible:   true,
		Photos:           []string{"photo-1.jpg"},
		PriorityLevel:    models.LevelMedium,
		TeamsDispatched:  []string{},
	}
}

func TestIncidentRepository_Postgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var repo service.IncidentRepository = repository.NewIncidentRepository(startPostgres(ctx, t))

	first := sampleIncident("Landslide on highway", models.LevelCritical)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, models.StatusReported, first.IncidentStatus)
	assert.Equal(t, models.DispatchPending, first.DispatchStatus)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	// created_at должен различаться, чтобы проверить порядок
	time.Sleep(10 * time.Millisecond)
	second := sampleIncident("Mudflow near school", models.LevelHigh)
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "27.7172,85.324", *got.GPSCoordinates)
	assert.Equal(t, []models.Assistance{models.AssistanceMedical, models.AssistanceRescue}, got.AssistanceNeeded)
	assert.Equal(t, []string{"photo-1.jpg"}, got.Photos)

	status := models.StatusResolved
	resolvedAt := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)
	comments := "Road cleared"
	teams := []string{"team-a", "team-b"}
	updated, err := repo.Update(ctx, first.ID, models.IncidentPatch{
		IncidentStatus:  &status,
		ResolutionDate:  &resolvedAt,
		Comments:        &comments,
		TeamsDispatched: &teams,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.IncidentStatus)
	assert.True(t, resolvedAt.Equal(*updated.ResolutionDate))
	assert.Equal(t, teams, updated.TeamsDispatched)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	all, err := repo.List(ctx, models.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	critical := models.LevelCritical
	filtered, err := repo.List(ctx, models.IncidentFilter{SeverityLevel: &critical, IncidentStatus: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.IncidentStatus]int{
		models.StatusReported: 1,
		models.StatusResolved: 1,
	}, counts)

	deleted, err := repo.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, deleted.ID)

	_, err = repo.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = repo.Update(ctx, second.ID, models.IncidentPatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = repo.Delete(ctx, second.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
