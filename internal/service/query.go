package service

import (
	"strings"

	"github.com/shenikar/disaster_incident_system/internal/models"
)

// BuildFilter строит конъюнктивный фильтр из необязательных критериев.
// Пустой критерий пропускается; неизвестное значение - ошибка валидации.
func BuildFilter(c models.ListCriteria) (models.IncidentFilter, error) {
	var f models.IncidentFilter

	if v := strings.TrimSpace(c.IncidentType); v != "" {
		t := models.IncidentType(v)
		if !t.IsValid() {
			return f, &models.ValidationError{Field: "type", Reason: "unknown incident type " + v}
		}
		f.IncidentType = &t
	}

	if v := strings.ToUpper(strings.TrimSpace(c.SeverityLevel)); v != "" {
		l := models.Level(v)
		if !l.IsValid() {
			return f, &models.ValidationError{Field: "severity", Reason: "unknown severity level " + v}
		}
		f.SeverityLevel = &l
	}

	if v := strings.ToUpper(strings.TrimSpace(c.IncidentStatus)); v != "" {
		s := models.IncidentStatus(v)
		if !s.IsValid() {
			return f, &models.ValidationError{Field: "status", Reason: "unknown incident status " + v}
		}
		f.IncidentStatus = &s
	}

	return f, nil
}
