package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentType - тип стихийного бедствия
type IncidentType string

const (
	TypeEarthquake IncidentType = "Earthquake"
	TypeFlood      IncidentType = "Flood"
	TypeLandslide  IncidentType = "Landslide"
	TypeFire       IncidentType = "Fire"
	TypeAvalanche  IncidentType = "Avalanche"
	TypeStorm      IncidentType = "Storm"
	TypeOther      IncidentType = "Other"
)

var incidentTypes = map[IncidentType]struct{}{
	TypeEarthquake: {}, TypeFlood: {}, TypeLandslide: {}, TypeFire: {},
	TypeAvalanche: {}, TypeStorm: {}, TypeOther: {},
}

func (t IncidentType) IsValid() bool {
	_, ok := incidentTypes[t]
	return ok
}

// Level - шкала LOW..CRITICAL, общая для severity_level и priority_level
type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Assistance - тег требуемой помощи
type Assistance string

const (
	AssistanceMedical Assistance = "Medical"
	AssistanceRescue  Assistance = "Rescue"
	AssistanceFire    Assistance = "Fire"
	AssistancePolice  Assistance = "Police"
	AssistanceShelter Assistance = "Shelter"
	AssistanceFood    Assistance = "Food"
	AssistanceWater   Assistance = "Water"
	AssistanceOther   Assistance = "Other"
)

func (a Assistance) IsValid() bool {
	switch a {
	case AssistanceMedical, AssistanceRescue, AssistanceFire, AssistancePolice,
		AssistanceShelter, AssistanceFood, AssistanceWater, AssistanceOther:
		return true
	}
	return false
}

// MaxPhotos - максимальное количество ссылок на фотографии у инцидента
const MaxPhotos = 5

// Incident - единственная сущность системы: зарегистрированное бедствие
type Incident struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Location         string         `json:"location"`
	GPSCoordinates   *string        `json:"gps_coordinates,omitempty"`
	IncidentType     IncidentType   `json:"incident_type"`
	SeverityLevel    Level          `json:"severity_level"`
	ReportedBy       *string        `json:"reported_by,omitempty"`
	ReporterName     string         `json:"reporter_name"`
	ReporterPhone    string         `json:"reporter_phone"`
	ReporterEmail    string         `json:"reporter_email"`
	AffectedPeople   int            `json:"affected_people"`
	Casualties       int            `json:"casualties"`
	AssistanceNeeded []Assistance   `json:"assistance_needed"`
	AreaAccessible   bool           `json:"area_accessible"`
	Photos           []string       `json:"photos"`
	DispatchStatus   DispatchStatus `json:"dispatch_status"`
	TeamsDispatched  []string       `json:"teams_dispatched"`
	IncidentStatus   IncidentStatus `json:"incident_status"`
	PriorityLevel    Level          `json:"priority_level"`
	AssignedOfficer  *string        `json:"assigned_officer,omitempty"`
	ResolutionDate   *time.Time     `json:"resolution_date,omitempty"`
	Comments         *string        `json:"comments,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Clone возвращает глубокую копию инцидента
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	c := *i
	c.GPSCoordinates = cloneString(i.GPSCoordinates)
	c.ReportedBy = cloneString(i.ReportedBy)
	c.AssignedOfficer = cloneString(i.AssignedOfficer)
	c.Comments = cloneString(i.Comments)
	if i.ResolutionDate != nil {
		t := *i.ResolutionDate
		c.ResolutionDate = &t
	}
	if i.AssistanceNeeded != nil {
		c.AssistanceNeeded = append(make([]Assistance, 0, len(i.AssistanceNeeded)), i.AssistanceNeeded...)
	}
	c.Photos = cloneStrings(i.Photos)
	c.TeamsDispatched = cloneStrings(i.TeamsDispatched)
	return &c
}

// cloneStrings сохраняет различие между nil и пустым срезом
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
