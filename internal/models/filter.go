package models

import (
	"bytes"
	"sort"
)

// IncidentFilter - конъюнкция необязательных критериев выборки.
// Незаданный критерий всегда истинен.
type IncidentFilter struct {
	IncidentType   *IncidentType
	SeverityLevel  *Level
	IncidentStatus *IncidentStatus
}

// Matches проверяет инцидент на соответствие всем заданным критериям
func (f IncidentFilter) Matches(inc *Incident) bool {
	if f.IncidentType != nil && inc.IncidentType != *f.IncidentType {
		return false
	}
	if f.SeverityLevel != nil && inc.SeverityLevel != *f.SeverityLevel {
		return false
	}
	if f.IncidentStatus != nil && inc.IncidentStatus != *f.IncidentStatus {
		return false
	}
	return true
}

// SortNewestFirst упорядочивает по created_at DESC, при равенстве по id ASC
func SortNewestFirst(incidents []*Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		a, b := incidents[i], incidents[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}
