package models

// FullReport - полная форма сообщения об инциденте.
// Порядок полей задает порядок проверок: сообщается первое нарушение.
type FullReport struct {
	Title            string   `json:"title" validate:"required,max=255"`
	IncidentType     string   `json:"incident_type" validate:"required,oneof=Earthquake Flood Landslide Fire Avalanche Storm Other"`
	SeverityLevel    string   `json:"severity_level" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Description      string   `json:"description" validate:"required"`
	Location         string   `json:"location" validate:"required,max=255"`
	GPSCoordinates   string   `json:"gps_coordinates" validate:"omitempty,gps"`
	Anonymous        bool     `json:"-"`
	ReporterName     string   `json:"reporter_name" validate:"required_if=Anonymous true,max=255"`
	ReporterPhone    string   `json:"reporter_phone" validate:"required_if=Anonymous true,max=20"`
	ReporterEmail    string   `json:"reporter_email" validate:"omitempty,email,max=255"`
	AffectedPeople   int      `json:"affected_people" validate:"gte=0"`
	Casualties       int      `json:"casualties" validate:"gte=0"`
	AssistanceNeeded []string `json:"assistance_needed" validate:"dive,oneof=Medical Rescue Fire Police Shelter Food Water Other"`
	AreaAccessible   *bool    `json:"area_accessible"`
	Photos           []string `json:"photos" validate:"dive,required"`
}

// EmergencyReport - сокращенная экстренная форма
type EmergencyReport struct {
	PhoneNumber        string   `json:"phone_number" validate:"required,max=20"`
	IncidentType       string   `json:"incident_type" validate:"required,oneof=Earthquake Flood Landslide Fire Avalanche Storm Other"`
	SeverityLevel      string   `json:"severity_level" validate:"required,oneof=CRITICAL HIGH"`
	Location           string   `json:"location" validate:"required,max=255"`
	GPSCoordinates     string   `json:"gps_coordinates" validate:"omitempty,gps"`
	Description        string   `json:"description"`
	AssistanceNeeded   []string `json:"assistance_needed" validate:"dive,oneof=Medical Rescue Fire Police"`
	CasualtiesReported string   `json:"casualties_reported" validate:"omitempty,oneof=YES NO"`
	PeopleAffected     int      `json:"people_affected" validate:"gte=0"`
	AreaAccessible     *bool    `json:"area_accessible"`
}

// ListCriteria - сырые критерии выборки из запроса
type ListCriteria struct {
	IncidentType   string
	SeverityLevel  string
	IncidentStatus string
}
