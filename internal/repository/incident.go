package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/service"
)

const incidentColumns = `
	id, title, description, location, gps_coordinates, incident_type, severity_level,
	reported_by, reporter_name, reporter_phone, reporter_email, affected_people, casualties,
	assistance_needed, area_accessible, photos, dispatch_status, teams_dispatched,
	incident_status, priority_level, assigned_officer, resolution_date, comments,
	created_at, updated_at`

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// Create создает новую запись об инциденте в бд.
// id, created_at, updated_at и начальные статусы назначает база.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (
			title, description, location, gps_coordinates, incident_type, severity_level,
			reported_by, reporter_name, reporter_phone, reporter_email, affected_people,
			casualties, assistance_needed, area_accessible, photos, priority_level
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + incidentColumns + `;`

	row := r.db.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Location,
		incident.GPSCoordinates,
		string(incident.IncidentType),
		string(incident.SeverityLevel),
		incident.ReportedBy,
		incident.ReporterName,
		incident.ReporterPhone,
		incident.ReporterEmail,
		incident.AffectedPeople,
		incident.Casualties,
		assistanceToStrings(incident.AssistanceNeeded),
		incident.AreaAccessible,
		nonNil(incident.Photos),
		string(incident.PriorityLevel),
	)
	created, err := scanIncident(row)
	if err != nil {
		return &models.PersistenceError{Op: "create", Err: err}
	}
	*incident = *created
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, &models.PersistenceError{Op: "get", Err: err}
	}
	return incident, nil
}

// Update применяет только переданные поля патча; updated_at обновляется всегда.
// Имена колонок фиксированы в коде, поэтому записать поле вне списка невозможно.
func (r *IncidentRepository) Update(ctx context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
	sets, args := patchAssignments(patch)
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE incidents SET %s WHERE id = $%d RETURNING %s;`,
		strings.Join(sets, ", "), len(args), incidentColumns)

	incident, err := scanIncident(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		// Если ни одна строка не обновлена, значит инцидента с таким id не существует
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found for update: %w", id, models.ErrNotFound)
		}
		return nil, &models.PersistenceError{Op: "update", Err: err}
	}
	return incident, nil
}

// Delete физически удаляет инцидент и возвращает удаленную запись
func (r *IncidentRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `DELETE FROM incidents WHERE id = $1 RETURNING ` + incidentColumns + `;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found for delete: %w", id, models.ErrNotFound)
		}
		return nil, &models.PersistenceError{Op: "delete", Err: err}
	}
	return incident, nil
}

// List возвращает все инциденты, подходящие под фильтр, новые первыми
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	var conditions []string
	var args []any

	if filter.IncidentType != nil {
		args = append(args, string(*filter.IncidentType))
		conditions = append(conditions, fmt.Sprintf("incident_type = $%d", len(args)))
	}
	if filter.SeverityLevel != nil {
		args = append(args, string(*filter.SeverityLevel))
		conditions = append(conditions, fmt.Sprintf("severity_level = $%d", len(args)))
	}
	if filter.IncidentStatus != nil {
		args = append(args, string(*filter.IncidentStatus))
		conditions = append(conditions, fmt.Sprintf("incident_status = $%d", len(args)))
	}

	query := `SELECT ` + incidentColumns + ` FROM incidents`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id ASC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, &models.PersistenceError{Op: "list", Err: fmt.Errorf("scan incident row: %w", err)}
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}
	return incidents, nil
}

// CountByStatus считает инциденты по incident_status одним агрегирующим запросом
func (r *IncidentRepository) CountByStatus(ctx context.Context) (map[models.IncidentStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT incident_status, COUNT(*) FROM incidents GROUP BY incident_status;`)
	if err != nil {
		return nil, &models.PersistenceError{Op: "count", Err: err}
	}
	defer rows.Close()

	counts := make(map[models.IncidentStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, &models.PersistenceError{Op: "count", Err: fmt.Errorf("scan status count: %w", err)}
		}
		counts[models.IncidentStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "count", Err: err}
	}
	return counts, nil
}

func patchAssignments(p models.IncidentPatch) ([]string, []any) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.IncidentType != nil {
		set("incident_type", string(*p.IncidentType))
	}
	if p.SeverityLevel != nil {
		set("severity_level", string(*p.SeverityLevel))
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Location != nil {
		set("location", *p.Location)
	}
	if p.AffectedPeople != nil {
		set("affected_people", *p.AffectedPeople)
	}
	if p.Casualties != nil {
		set("casualties", *p.Casualties)
	}
	if p.AssistanceNeeded != nil {
		set("assistance_needed", assistanceToStrings(*p.AssistanceNeeded))
	}
	if p.AreaAccessible != nil {
		set("area_accessible", *p.AreaAccessible)
	}
	if p.DispatchStatus != nil {
		set("dispatch_status", string(*p.DispatchStatus))
	}
	if p.TeamsDispatched != nil {
		set("teams_dispatched", nonNil(*p.TeamsDispatched))
	}
	if p.IncidentStatus != nil {
		set("incident_status", string(*p.IncidentStatus))
	}
	if p.PriorityLevel != nil {
		set("priority_level", string(*p.PriorityLevel))
	}
	if p.AssignedOfficer != nil {
		set("assigned_officer", *p.AssignedOfficer)
	}
	if p.ResolutionDate != nil {
		set("resolution_date", *p.ResolutionDate)
	}
	if p.Comments != nil {
		set("comments", *p.Comments)
	}
	return sets, args
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	var (
		inc                                 models.Incident
		incidentType, severity, dispatch    string
		status, priority                    string
		assistance, photos, teamsDispatched []string
	)
	err := row.Scan(
		&inc.ID,
		&inc.Title,
		&inc.Description,
		&inc.Location,
		&inc.GPSCoordinates,
		&incidentType,
		&severity,
		&inc.ReportedBy,
		&inc.ReporterName,
		&inc.ReporterPhone,
		&inc.ReporterEmail,
		&inc.AffectedPeople,
		&inc.Casualties,
		&assistance,
		&inc.AreaAccessible,
		&photos,
		&dispatch,
		&teamsDispatched,
		&status,
		&priority,
		&inc.AssignedOfficer,
		&inc.ResolutionDate,
		&inc.Comments,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inc.IncidentType = models.IncidentType(incidentType)
	inc.SeverityLevel = models.Level(severity)
	inc.DispatchStatus = models.DispatchStatus(dispatch)
	inc.IncidentStatus = models.IncidentStatus(status)
	inc.PriorityLevel = models.Level(priority)
	inc.AssistanceNeeded = make([]models.Assistance, len(assistance))
	for i, a := range assistance {
		inc.AssistanceNeeded[i] = models.Assistance(a)
	}
	inc.Photos = nonNil(photos)
	inc.TeamsDispatched = nonNil(teamsDispatched)
	return &inc, nil
}

func assistanceToStrings(in []models.Assistance) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = string(a)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
