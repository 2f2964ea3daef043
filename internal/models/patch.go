package models

import "time"

// IncidentPatch - закрытый список изменяемых полей инцидента.
// nil означает "поле не передано"; поля вне структуры изменить невозможно.
type IncidentPatch struct {
	Title            *string
	IncidentType     *IncidentType
	SeverityLevel    *Level
	Description      *string
	Location         *string
	AffectedPeople   *int
	Casualties       *int
	AssistanceNeeded *[]Assistance
	AreaAccessible   *bool
	DispatchStatus   *DispatchStatus
	TeamsDispatched  *[]string
	IncidentStatus   *IncidentStatus
	PriorityLevel    *Level
	AssignedOfficer  *string
	ResolutionDate   *time.Time
	Comments         *string
}

// IsEmpty возвращает true, если патч не содержит ни одного поля
func (p IncidentPatch) IsEmpty() bool {
	return p == IncidentPatch{}
}

// Apply переносит переданные поля патча в инцидент. updated_at не трогает.
func (p IncidentPatch) Apply(inc *Incident) {
	if p.Title != nil {
		inc.Title = *p.Title
	}
	if p.IncidentType != nil {
		inc.IncidentType = *p.IncidentType
	}
	if p.SeverityLevel != nil {
		inc.SeverityLevel = *p.SeverityLevel
	}
	if p.Description != nil {
		inc.Description = *p.Description
	}
	if p.Location != nil {
		inc.Location = *p.Location
	}
	if p.AffectedPeople != nil {
		inc.AffectedPeople = *p.AffectedPeople
	}
	if p.Casualties != nil {
		inc.Casualties = *p.Casualties
	}
	if p.AssistanceNeeded != nil {
		inc.AssistanceNeeded = append(make([]Assistance, 0, len(*p.AssistanceNeeded)), (*p.AssistanceNeeded)...)
	}
	if p.AreaAccessible != nil {
		inc.AreaAccessible = *p.AreaAccessible
	}
	if p.DispatchStatus != nil {
		inc.DispatchStatus = *p.DispatchStatus
	}
	if p.TeamsDispatched != nil {
		inc.TeamsDispatched = cloneStrings(*p.TeamsDispatched)
	}
	if p.IncidentStatus != nil {
		inc.IncidentStatus = *p.IncidentStatus
	}
	if p.PriorityLevel != nil {
		inc.PriorityLevel = *p.PriorityLevel
	}
	if p.AssignedOfficer != nil {
		inc.AssignedOfficer = cloneString(p.AssignedOfficer)
	}
	if p.ResolutionDate != nil {
		t := *p.ResolutionDate
		inc.ResolutionDate = &t
	}
	if p.Comments != nil {
		inc.Comments = cloneString(p.Comments)
	}
}
