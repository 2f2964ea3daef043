package service

import (
	"strings"
	"testing"

	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFullReport() models.FullReport {
	return models.FullReport{
		Title:         "Bridge collapse",
		IncidentType:  "Flood",
		SeverityLevel: "HIGH",
		Description:   "The river washed away the main bridge",
		Location:      "Pokhara",
		ReporterName:  "Sita",
		ReporterPhone: "+9779800000000",
	}
}

func requireValidationError(t *testing.T, err error, field string) *models.ValidationError {
	t.Helper()
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
	return verr
}

func TestNormalizeFullReport_AnonymousDefaults(t *testing.T) {
	v := NewIngestValidator()

	inc, err := v.NormalizeFullReport(validFullReport(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Bridge collapse", inc.Title)
	assert.Equal(t, models.TypeFlood, inc.IncidentType)
	assert.Equal(t, models.LevelHigh, inc.SeverityLevel)
	assert.Equal(t, models.LevelMedium, inc.PriorityLevel)
	assert.Equal(t, 0, inc.Casualties)
	assert.True(t, inc.AreaAccessible)
	assert.Nil(t, inc.ReportedBy)
	assert.Equal(t, "Sita", inc.ReporterName)
	assert.Empty(t, inc.Photos)
	assert.Empty(t, inc.TeamsDispatched)
}

func TestNormalizeFullReport_SeverityDefaultsToMedium(t *testing.T) {
	r := validFullReport()
	r.SeverityLevel = "  "

	inc, err := NewIngestValidator().NormalizeFullReport(r, nil)

	require.NoError(t, err)
	assert.Equal(t, models.LevelMedium, inc.SeverityLevel)
}

func TestNormalizeFullReport_AuthenticatedCallerProfile(t *testing.T) {
	r := validFullReport()
	r.ReporterName = ""
	r.ReporterPhone = ""
	caller := &models.Caller{ID: "user-42", Role: "citizen", Name: "Ram", Phone: "+977111", Email: "ram@example.com"}

	inc, err := NewIngestValidator().NormalizeFullReport(r, caller)

	require.NoError(t, err)
	require.NotNil(t, inc.ReportedBy)
	assert.Equal(t, "user-42", *inc.ReportedBy)
	assert.Equal(t, "Ram", inc.ReporterName)
	assert.Equal(t, "+977111", inc.ReporterPhone)
	assert.Equal(t, "ram@example.com", inc.ReporterEmail)
}

func TestNormalizeFullReport_Normalization(t *testing.T) {
	r := validFullReport()
	r.Title = "  Bridge collapse  "
	r.GPSCoordinates = " 28.2096 , 83.9856 "
	r.AssistanceNeeded = []string{"Rescue", "Medical", "Rescue"}
	r.Photos = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg", "g.jpg"}
	accessible := false
	r.AreaAccessible = &accessible

	inc, err := NewIngestValidator().NormalizeFullReport(r, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bridge collapse", inc.Title)
	require.NotNil(t, inc.GPSCoordinates)
	assert.Equal(t, "28.2096,83.9856", *inc.GPSCoordinates)
	assert.Equal(t, []models.Assistance{models.AssistanceMedical, models.AssistanceRescue}, inc.AssistanceNeeded)
	assert.Len(t, inc.Photos, models.MaxPhotos)
	assert.False(t, inc.AreaAccessible)
}

func TestNormalizeFullReport_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.FullReport)
		caller *models.Caller
		field  string
	}{
		{
			name:   "missing title",
			mutate: func(r *models.FullReport) { r.Title = " " },
			field:  "title",
		},
		{
			name: "first violation wins",
			mutate: func(r *models.FullReport) {
				r.Title = ""
				r.Location = ""
			},
			field: "title",
		},
		{
			name:   "title too long",
			mutate: func(r *models.FullReport) { r.Title = strings.Repeat("x", 256) },
			field:  "title",
		},
		{
			name:   "unknown type",
			mutate: func(r *models.FullReport) { r.IncidentType = "Meteor" },
			field:  "incident_type",
		},
		{
			name:   "unknown severity",
			mutate: func(r *models.FullReport) { r.SeverityLevel = "EXTREME" },
			field:  "severity_level",
		},
		{
			name:   "missing description",
			mutate: func(r *models.FullReport) { r.Description = "" },
			field:  "description",
		},
		{
			name:   "missing location",
			mutate: func(r *models.FullReport) { r.Location = "" },
			field:  "location",
		},
		{
			name:   "malformed gps",
			mutate: func(r *models.FullReport) { r.GPSCoordinates = "north,east" },
			field:  "gps_coordinates",
		},
		{
			name:   "gps out of range",
			mutate: func(r *models.FullReport) { r.GPSCoordinates = "91,10" },
			field:  "gps_coordinates",
		},
		{
			name:   "anonymous without name",
			mutate: func(r *models.FullReport) { r.ReporterName = "" },
			field:  "reporter_name",
		},
		{
			name:   "anonymous without phone",
			mutate: func(r *models.FullReport) { r.ReporterPhone = "" },
			field:  "reporter_phone",
		},
		{
			name:   "invalid email",
			mutate: func(r *models.FullReport) { r.ReporterEmail = "not-an-email" },
			field:  "reporter_email",
		},
		{
			name:   "negative casualties",
			mutate: func(r *models.FullReport) { r.Casualties = -1 },
			field:  "casualties",
		},
		{
			name:   "unknown assistance",
			mutate: func(r *models.FullReport) { r.AssistanceNeeded = []string{"Medical", "Helicopter"} },
			field:  "assistance_needed",
		},
	}

	v := NewIngestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validFullReport()
			tt.mutate(&r)

			inc, err := v.NormalizeFullReport(r, tt.caller)

			assert.Nil(t, inc)
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestNormalizeEmergencyReport(t *testing.T) {
	r := models.EmergencyReport{
		PhoneNumber:        "+9779811111111",
		IncidentType:       "Fire",
		Location:           "Thamel",
		AssistanceNeeded:   []string{"Fire", "Medical", "Fire"},
		CasualtiesReported: "yes",
		PeopleAffected:     12,
	}

	inc, err := NewIngestValidator().NormalizeEmergencyReport(r)

	require.NoError(t, err)
	assert.Equal(t, "EMERGENCY: Fire", inc.Title)
	assert.Equal(t, models.LevelCritical, inc.SeverityLevel)
	assert.Equal(t, "+9779811111111", inc.ReporterPhone)
	assert.Equal(t, 1, inc.Casualties)
	assert.Equal(t, 12, inc.AffectedPeople)
	assert.Equal(t, []models.Assistance{models.AssistanceFire, models.AssistanceMedical}, inc.AssistanceNeeded)
	assert.Nil(t, inc.ReportedBy)
}

func TestNormalizeEmergencyReport_Violations(t *testing.T) {
	base := func() models.EmergencyReport {
		return models.EmergencyReport{PhoneNumber: "112", IncidentType: "Storm", Location: "Lalitpur"}
	}
	tests := []struct {
		name   string
		mutate func(r *models.EmergencyReport)
		field  string
	}{
		{"missing phone", func(r *models.EmergencyReport) { r.PhoneNumber = "" }, "phone_number"},
		{"low severity", func(r *models.EmergencyReport) { r.SeverityLevel = "LOW" }, "severity_level"},
		{"medium severity", func(r *models.EmergencyReport) { r.SeverityLevel = "MEDIUM" }, "severity_level"},
		{"missing location", func(r *models.EmergencyReport) { r.Location = "" }, "location"},
		{"shelter not allowed", func(r *models.EmergencyReport) { r.AssistanceNeeded = []string{"Shelter"} }, "assistance_needed"},
		{"bad casualties flag", func(r *models.EmergencyReport) { r.CasualtiesReported = "MAYBE" }, "casualties_reported"},
	}

	v := NewIngestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.mutate(&r)

			_, err := v.NormalizeEmergencyReport(r)

			requireValidationError(t, err, tt.field)
		})
	}
}

func TestParseGPS(t *testing.T) {
	lat, lng, err := ParseGPS("-33.8688, 151.2093")
	require.NoError(t, err)
	assert.InDelta(t, -33.8688, lat, 1e-9)
	assert.InDelta(t, 151.2093, lng, 1e-9)

	lat, lng, err = ParseGPS("+27.7,-85")
	require.NoError(t, err)
	assert.InDelta(t, 27.7, lat, 1e-9)
	assert.InDelta(t, -85.0, lng, 1e-9)

	for _, in := range []string{
		"", "1", "1,2,3", "NaN,1", "1,Inf", "0,181",
		"0x1p4,0x1p5", "1e1,2", "1_0,2", ".5,1", "1.,2",
	} {
		_, _, err := ParseGPS(in)
		assert.Error(t, err, in)
	}
}
