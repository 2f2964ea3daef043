package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest DTO полной формы сообщения об инциденте.
// Поля репортера обязательны только для анонимного отправителя.
// @Description DTO полной формы сообщения об инциденте
type CreateReportRequest struct {
	Title            string   `json:"title" example:"Bridge collapse"`
	IncidentType     string   `json:"incident_type" example:"Flood" enums:"Earthquake,Flood,Landslide,Fire,Avalanche,Storm,Other"`
	SeverityLevel    string   `json:"severity_level,omitempty" example:"HIGH" enums:"LOW,MEDIUM,HIGH,CRITICAL"`
	Description      string   `json:"description"`
	Location         string   `json:"location" example:"Pokhara"`
	GPSCoordinates   string   `json:"gps_coordinates,omitempty" example:"28.2096,83.9856"`
	ReporterName     string   `json:"reporter_name,omitempty"`
	ReporterPhone    string   `json:"reporter_phone,omitempty"`
	ReporterEmail    string   `json:"reporter_email,omitempty"`
	AffectedPeople   int      `json:"affected_people,omitempty"`
	Casualties       int      `json:"casualties,omitempty"`
	AssistanceNeeded []string `json:"assistance_needed,omitempty"`
	AreaAccessible   *bool    `json:"area_accessible,omitempty"`
	Photos           []string `json:"photos,omitempty"`
}

// EmergencyReportRequest DTO экстренного сообщения
// @Description DTO экстренного сообщения
type EmergencyReportRequest struct {
	PhoneNumber        string   `json:"phone_number" example:"+9779800000000"`
	IncidentType       string   `json:"incident_type" example:"Fire"`
	SeverityLevel      string   `json:"severity_level,omitempty" example:"CRITICAL" enums:"CRITICAL,HIGH"`
	Location           string   `json:"location"`
	GPSCoordinates     string   `json:"gps_coordinates,omitempty"`
	Description        string   `json:"description,omitempty"`
	AssistanceNeeded   []string `json:"assistance_needed,omitempty"`
	CasualtiesReported string   `json:"casualties_reported,omitempty" enums:"YES,NO"`
	PeopleAffected     int      `json:"people_affected,omitempty"`
	AreaAccessible     *bool    `json:"area_accessible,omitempty"`
}

// UpdateIncidentRequest DTO частичного обновления инцидента.
// Ключи вне этого списка игнорируются.
// @Description DTO частичного обновления инцидента
type UpdateIncidentRequest struct {
	Title            *string    `json:"title,omitempty"`
	IncidentType     *string    `json:"incident_type,omitempty"`
	SeverityLevel    *string    `json:"severity_level,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Location         *string    `json:"location,omitempty"`
	AffectedPeople   *int       `json:"affected_people,omitempty"`
	Casualties       *int       `json:"casualties,omitempty"`
	AssistanceNeeded *[]string  `json:"assistance_needed,omitempty"`
	AreaAccessible   *bool      `json:"area_accessible,omitempty"`
	DispatchStatus   *string    `json:"dispatch_status,omitempty" enums:"PENDING,DISPATCHED,ON_SCENE,COMPLETED"`
	TeamsDispatched  *[]string  `json:"teams_dispatched,omitempty"`
	IncidentStatus   *string    `json:"incident_status,omitempty" enums:"REPORTED,INVESTIGATING,RESPONDING,RESOLVED"`
	PriorityLevel    *string    `json:"priority_level,omitempty"`
	AssignedOfficer  *string    `json:"assigned_officer,omitempty"`
	ResolutionDate   *time.Time `json:"resolution_date,omitempty"`
	Comments         *string    `json:"comments,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	GPSCoordinates   *string    `json:"gps_coordinates,omitempty"`
	IncidentType     string     `json:"incident_type"`
	SeverityLevel    string     `json:"severity_level"`
	ReportedBy       *string    `json:"reported_by,omitempty"`
	ReporterName     string     `json:"reporter_name,omitempty"`
	ReporterPhone    string     `json:"reporter_phone,omitempty"`
	ReporterEmail    string     `json:"reporter_email,omitempty"`
	AffectedPeople   int        `json:"affected_people"`
	Casualties       int        `json:"casualties"`
	AssistanceNeeded []string   `json:"assistance_needed"`
	AreaAccessible   bool       `json:"area_accessible"`
	Photos           []string   `json:"photos"`
	DispatchStatus   string     `json:"dispatch_status"`
	TeamsDispatched  []string   `json:"teams_dispatched"`
	IncidentStatus   string     `json:"incident_status"`
	PriorityLevel    string     `json:"priority_level"`
	AssignedOfficer  *string    `json:"assigned_officer,omitempty"`
	ResolutionDate   *time.Time `json:"resolution_date,omitempty"`
	Comments         *string    `json:"comments,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ErrorResponse DTO ошибки; field заполняется для ошибок валидации
// @Description DTO ошибки
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
