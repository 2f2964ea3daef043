package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentStatus_CanAdvanceTo(t *testing.T) {
	order := []IncidentStatus{StatusReported, StatusInvestigating, StatusResponding, StatusResolved}
	for i, from := range order {
		for j, to := range order {
			assert.Equal(t, j >= i, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, StatusReported.CanAdvanceTo("CLOSED"))
	assert.True(t, StatusResolved.IsTerminal())
	assert.False(t, StatusResponding.IsTerminal())
}

func TestDispatchStatus_CanAdvanceTo(t *testing.T) {
	order := []DispatchStatus{DispatchPending, DispatchDispatched, DispatchOnScene, DispatchCompleted}
	for i, from := range order {
		for j, to := range order {
			assert.Equal(t, j >= i, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, DispatchStatus("LOST").IsValid())
}

func TestIncidentPatch_Apply(t *testing.T) {
	title := "New title"
	casualties := 4
	teams := []string{"alpha"}
	status := StatusInvestigating
	inc := &Incident{
		Title:          "Old title",
		Location:       "Pokhara",
		IncidentStatus: StatusReported,
		UpdatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	before := inc.UpdatedAt

	IncidentPatch{Title: &title, Casualties: &casualties, TeamsDispatched: &teams, IncidentStatus: &status}.Apply(inc)

	assert.Equal(t, "New title", inc.Title)
	assert.Equal(t, "Pokhara", inc.Location)
	assert.Equal(t, 4, inc.Casualties)
	assert.Equal(t, []string{"alpha"}, inc.TeamsDispatched)
	assert.Equal(t, StatusInvestigating, inc.IncidentStatus)
	assert.Equal(t, before, inc.UpdatedAt)

	teams[0] = "mutated"
	assert.Equal(t, "alpha", inc.TeamsDispatched[0])
}

func TestIncidentPatch_IsEmpty(t *testing.T) {
	assert.True(t, IncidentPatch{}.IsEmpty())
	title := "x"
	assert.False(t, IncidentPatch{Title: &title}.IsEmpty())
}

func TestIncidentFilter_Matches(t *testing.T) {
	critical := LevelCritical
	flood := TypeFlood
	resolved := StatusResolved
	inc := &Incident{IncidentType: TypeFlood, SeverityLevel: LevelCritical, IncidentStatus: StatusReported}

	assert.True(t, IncidentFilter{}.Matches(inc))
	assert.True(t, IncidentFilter{SeverityLevel: &critical, IncidentType: &flood}.Matches(inc))
	assert.False(t, IncidentFilter{SeverityLevel: &critical, IncidentStatus: &resolved}.Matches(inc))
}

func TestSortNewestFirst(t *testing.T) {
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	incidents := []*Incident{
		{ID: uuid.New(), CreatedAt: t0},
		{ID: high, CreatedAt: t0.Add(time.Hour)},
		{ID: low, CreatedAt: t0.Add(time.Hour)},
	}

	SortNewestFirst(incidents)

	assert.Equal(t, low, incidents[0].ID)
	assert.Equal(t, high, incidents[1].ID)
	assert.Equal(t, t0, incidents[2].CreatedAt)
}

func TestIncident_Clone(t *testing.T) {
	gps := "27.7,85.3"
	orig := &Incident{
		GPSCoordinates:   &gps,
		AssistanceNeeded: []Assistance{AssistanceMedical},
		Photos:           []string{},
		TeamsDispatched:  []string{"alpha"},
	}

	c := orig.Clone()
	*c.GPSCoordinates = "0,0"
	c.TeamsDispatched[0] = "beta"

	assert.Equal(t, "27.7,85.3", *orig.GPSCoordinates)
	assert.Equal(t, "alpha", orig.TeamsDispatched[0])
	require.NotNil(t, c.Photos)
	assert.Empty(t, c.Photos)
	assert.Nil(t, (*Incident)(nil).Clone())
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "invalid title: is required", (&ValidationError{Field: "title", Reason: "is required"}).Error())
	assert.Equal(t, "invalid incident_status transition from RESPONDING to REPORTED",
		(&InvalidTransitionError{Field: "incident_status", From: "RESPONDING", To: "REPORTED"}).Error())
	assert.Equal(t, "anonymous caller is not allowed to incident:update",
		(&AuthorizationError{Action: ActionUpdateIncident}).Error())
	assert.True(t, (*Caller)(nil).IsAnonymous())
	assert.False(t, (&Caller{ID: "u"}).IsAnonymous())
}
