package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_incident_system/internal/models"
)

// Authorizer определяет, есть ли у роли право на действие
type Authorizer interface {
	Allowed(role string, action models.Action) (bool, error)
}

// LifecycleEngine владеет автоматами состояний инцидента и
// правилами записи полей при обновлении.
type LifecycleEngine struct {
	authorizer Authorizer
	clock      clockwork.Clock
}

func NewLifecycleEngine(authorizer Authorizer, clock clockwork.Clock) *LifecycleEngine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LifecycleEngine{authorizer: authorizer, clock: clock}
}

// Authorize проверяет возможность вызывающего до любого обращения к хранилищу
func (e *LifecycleEngine) Authorize(caller *models.Caller, action models.Action) error {
	if caller.IsAnonymous() {
		return &models.AuthorizationError{Action: action}
	}
	ok, err := e.authorizer.Allowed(caller.Role, action)
	if err != nil {
		return fmt.Errorf("evaluate policy: %w", err)
	}
	if !ok {
		return &models.AuthorizationError{CallerID: caller.ID, Action: action}
	}
	return nil
}

// ValidatePatch проверяет значения переданных полей и нормализует их на месте
func (e *LifecycleEngine) ValidatePatch(p *models.IncidentPatch) error {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" || utf8.RuneCountInString(v) > 255 {
			return &models.ValidationError{Field: "title", Reason: "must be 1 to 255 characters"}
		}
		p.Title = &v
	}
	if p.IncidentType != nil && !p.IncidentType.IsValid() {
		return &models.ValidationError{Field: "incident_type", Reason: "unknown incident type " + string(*p.IncidentType)}
	}
	if p.SeverityLevel != nil && !p.SeverityLevel.IsValid() {
		return &models.ValidationError{Field: "severity_level", Reason: "unknown level " + string(*p.SeverityLevel)}
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if v == "" {
			return &models.ValidationError{Field: "description", Reason: "is required"}
		}
		p.Description = &v
	}
	if p.Location != nil {
		v := strings.TrimSpace(*p.Location)
		if v == "" || utf8.RuneCountInString(v) > 255 {
			return &models.ValidationError{Field: "location", Reason: "must be 1 to 255 characters"}
		}
		p.Location = &v
	}
	if p.AffectedPeople != nil && *p.AffectedPeople < 0 {
		return &models.ValidationError{Field: "affected_people", Reason: "must not be negative"}
	}
	if p.Casualties != nil && *p.Casualties < 0 {
		return &models.ValidationError{Field: "casualties", Reason: "must not be negative"}
	}
	if p.AssistanceNeeded != nil {
		raw := make([]string, 0, len(*p.AssistanceNeeded))
		for _, a := range *p.AssistanceNeeded {
			if !a.IsValid() {
				return &models.ValidationError{Field: "assistance_needed", Reason: "unknown assistance " + string(a)}
			}
			raw = append(raw, string(a))
		}
		set := dedupeAssistance(raw)
		p.AssistanceNeeded = &set
	}
	if p.DispatchStatus != nil && !p.DispatchStatus.IsValid() {
		return &models.ValidationError{Field: "dispatch_status", Reason: "unknown dispatch status " + string(*p.DispatchStatus)}
	}
	if p.TeamsDispatched != nil {
		for _, t := range *p.TeamsDispatched {
			if strings.TrimSpace(t) == "" {
				return &models.ValidationError{Field: "teams_dispatched", Reason: "team identifier must not be empty"}
			}
		}
		set := dedupeStrings(*p.TeamsDispatched)
		p.TeamsDispatched = &set
	}
	if p.IncidentStatus != nil && !p.IncidentStatus.IsValid() {
		return &models.ValidationError{Field: "incident_status", Reason: "unknown incident status " + string(*p.IncidentStatus)}
	}
	if p.PriorityLevel != nil && !p.PriorityLevel.IsValid() {
		return &models.ValidationError{Field: "priority_level", Reason: "unknown level " + string(*p.PriorityLevel)}
	}
	if p.AssignedOfficer != nil {
		v := strings.TrimSpace(*p.AssignedOfficer)
		if v == "" {
			return &models.ValidationError{Field: "assigned_officer", Reason: "must not be empty"}
		}
		p.AssignedOfficer = &v
	}
	if p.Comments != nil {
		v := strings.TrimSpace(*p.Comments)
		p.Comments = &v
	}

	resolving := p.IncidentStatus != nil && *p.IncidentStatus == models.StatusResolved
	if p.ResolutionDate != nil && !resolving {
		return &models.ValidationError{Field: "resolution_date", Reason: "can only be set together with incident_status RESOLVED"}
	}
	if p.Comments != nil && !resolving {
		return &models.ValidationError{Field: "comments", Reason: "can only be set together with incident_status RESOLVED"}
	}
	return nil
}

// CheckTransition сверяет патч с текущим состоянием: статусы двигаются только вперед.
// При переходе в RESOLVED без даты проставляет текущее время.
func (e *LifecycleEngine) CheckTransition(current *models.Incident, p *models.IncidentPatch) error {
	if p.IncidentStatus != nil && !current.IncidentStatus.CanAdvanceTo(*p.IncidentStatus) {
		return &models.InvalidTransitionError{
			Field: "incident_status",
			From:  string(current.IncidentStatus),
			To:    string(*p.IncidentStatus),
		}
	}
	if p.DispatchStatus != nil && !current.DispatchStatus.CanAdvanceTo(*p.DispatchStatus) {
		return &models.InvalidTransitionError{
			Field: "dispatch_status",
			From:  string(current.DispatchStatus),
			To:    string(*p.DispatchStatus),
		}
	}

	if p.IncidentStatus == nil || *p.IncidentStatus != models.StatusResolved {
		return nil
	}

	if current.IncidentStatus.IsTerminal() {
		// Итоги фиксируются один раз, в момент перехода в RESOLVED
		if p.ResolutionDate != nil {
			return &models.ValidationError{Field: "resolution_date", Reason: "incident is already resolved"}
		}
		if p.Comments != nil {
			return &models.ValidationError{Field: "comments", Reason: "incident is already resolved"}
		}
		return nil
	}

	if p.ResolutionDate == nil {
		now := e.clock.Now().UTC()
		p.ResolutionDate = &now
	}
	return nil
}
