package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/disaster_incident_system/internal/config"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	logger          *logrus.Logger
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		logger:          logger,
		cfg:             cfg,
	}
}

// @Summary Report an incident
// @Description Submit a full incident report. Anonymous reporters must provide reporter_name and reporter_phone; authenticated reporters get them from their profile.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateReportRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/report [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	incident, err := h.incidentService.CreateFullReport(c.Request.Context(), DTOToFullReport(input), callerFrom(c))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Report an emergency
// @Description Submit a short emergency report. No authentication required.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body EmergencyReportRequest true "Emergency report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/emergency [post]
func (h *Handler) createEmergencyReport(c *gin.Context) {
	var input EmergencyReportRequest
	log := h.logger.WithField("method", "createEmergencyReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	incident, err := h.incidentService.CreateEmergencyReport(c.Request.Context(), DTOToEmergencyReport(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary List incidents
// @Description List all incidents matching the optional filters, newest first.
// @Tags Incidents
// @Produce json
// @Param type query string false "Incident type" Enums(Earthquake, Flood, Landslide, Fire, Avalanche, Storm, Other)
// @Param severity query string false "Severity level" Enums(LOW, MEDIUM, HIGH, CRITICAL)
// @Param status query string false "Incident status" Enums(REPORTED, INVESTIGATING, RESPONDING, RESOLVED)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} ErrorResponse "Unknown filter value"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	criteria := models.ListCriteria{
		IncidentType:   c.Query("type"),
		SeverityLevel:  c.Query("severity"),
		IncidentStatus: c.Query("status"),
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), criteria)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid incident ID", Field: "id"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update an incident
// @Description Partially update an incident. Statuses only move forward; resolution_date and comments are accepted only together with incident_status RESOLVED. Requires the official role.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Fields to update"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID or validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid incident ID", Field: "id"})
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	incident, err := h.incidentService.UpdateIncident(c.Request.Context(), id, DTOToIncidentPatch(input), callerFrom(c))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Delete an incident
// @Description Permanently delete an incident. Requires the official role.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not allowed"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid incident ID", Field: "id"})
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id, callerFrom(c)); err != nil {
		h.writeError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError переводит доменную ошибку в HTTP-статус
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	var (
		validationErr *models.ValidationError
		transitionErr *models.InvalidTransitionError
		authErr       *models.AuthorizationError
	)
	switch {
	case errors.As(err, &validationErr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error(), Field: validationErr.Field})
	case errors.As(err, &transitionErr):
		log.WithError(err).Warn("Rejected status transition")
		c.JSON(http.StatusConflict, ErrorResponse{Error: transitionErr.Error(), Field: transitionErr.Field})
	case errors.As(err, &authErr):
		log.WithError(err).Warn("Caller is not allowed")
		if authErr.CallerID == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}
		c.JSON(http.StatusForbidden, ErrorResponse{Error: authErr.Error()})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Incident not found")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "incident not found"})
	default:
		log.WithError(err).Error("Failed to process request in service")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
