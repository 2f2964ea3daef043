package v1

import "github.com/shenikar/disaster_incident_system/internal/models"

// DTOToFullReport преобразует DTO полной формы в доменную форму
func DTOToFullReport(dto CreateReportRequest) models.FullReport {
	return models.FullReport{
		Title:            dto.Title,
		IncidentType:     dto.IncidentType,
		SeverityLevel:    dto.SeverityLevel,
		Description:      dto.Description,
		Location:         dto.Location,
		GPSCoordinates:   dto.GPSCoordinates,
		ReporterName:     dto.ReporterName,
		ReporterPhone:    dto.ReporterPhone,
		ReporterEmail:    dto.ReporterEmail,
		AffectedPeople:   dto.AffectedPeople,
		Casualties:       dto.Casualties,
		AssistanceNeeded: dto.AssistanceNeeded,
		AreaAccessible:   dto.AreaAccessible,
		Photos:           dto.Photos,
	}
}

// DTOToEmergencyReport преобразует DTO экстренной формы в доменную форму
func DTOToEmergencyReport(dto EmergencyReportRequest) models.EmergencyReport {
	return models.EmergencyReport{
		PhoneNumber:        dto.PhoneNumber,
		IncidentType:       dto.IncidentType,
		SeverityLevel:      dto.SeverityLevel,
		Location:           dto.Location,
		GPSCoordinates:     dto.GPSCoordinates,
		Description:        dto.Description,
		AssistanceNeeded:   dto.AssistanceNeeded,
		CasualtiesReported: dto.CasualtiesReported,
		PeopleAffected:     dto.PeopleAffected,
		AreaAccessible:     dto.AreaAccessible,
	}
}

// DTOToIncidentPatch переносит переданные поля в патч; значения проверяет сервис
func DTOToIncidentPatch(dto UpdateIncidentRequest) models.IncidentPatch {
	p := models.IncidentPatch{
		Title:           dto.Title,
		Description:     dto.Description,
		Location:        dto.Location,
		AffectedPeople:  dto.AffectedPeople,
		Casualties:      dto.Casualties,
		AreaAccessible:  dto.AreaAccessible,
		TeamsDispatched: dto.TeamsDispatched,
		AssignedOfficer: dto.AssignedOfficer,
		ResolutionDate:  dto.ResolutionDate,
		Comments:        dto.Comments,
	}
	if dto.IncidentType != nil {
		v := models.IncidentType(*dto.IncidentType)
		p.IncidentType = &v
	}
	if dto.SeverityLevel != nil {
		v := models.Level(*dto.SeverityLevel)
		p.SeverityLevel = &v
	}
	if dto.AssistanceNeeded != nil {
		v := make([]models.Assistance, len(*dto.AssistanceNeeded))
		for i, a := range *dto.AssistanceNeeded {
			v[i] = models.Assistance(a)
		}
		p.AssistanceNeeded = &v
	}
	if dto.DispatchStatus != nil {
		v := models.DispatchStatus(*dto.DispatchStatus)
		p.DispatchStatus = &v
	}
	if dto.IncidentStatus != nil {
		v := models.IncidentStatus(*dto.IncidentStatus)
		p.IncidentStatus = &v
	}
	if dto.PriorityLevel != nil {
		v := models.Level(*dto.PriorityLevel)
		p.PriorityLevel = &v
	}
	return p
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	assistance := make([]string, len(model.AssistanceNeeded))
	for i, a := range model.AssistanceNeeded {
		assistance[i] = string(a)
	}
	return &IncidentResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		Location:         model.Location,
		GPSCoordinates:   model.GPSCoordinates,
		IncidentType:     string(model.IncidentType),
		SeverityLevel:    string(model.SeverityLevel),
		ReportedBy:       model.ReportedBy,
		ReporterName:     model.ReporterName,
		ReporterPhone:    model.ReporterPhone,
		ReporterEmail:    model.ReporterEmail,
		AffectedPeople:   model.AffectedPeople,
		Casualties:       model.Casualties,
		AssistanceNeeded: assistance,
		AreaAccessible:   model.AreaAccessible,
		Photos:           nonNil(model.Photos),
		DispatchStatus:   string(model.DispatchStatus),
		TeamsDispatched:  nonNil(model.TeamsDispatched),
		IncidentStatus:   string(model.IncidentStatus),
		PriorityLevel:    string(model.PriorityLevel),
		AssignedOfficer:  model.AssignedOfficer,
		ResolutionDate:   model.ResolutionDate,
		Comments:         model.Comments,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
