package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	incidents := api.Group("/incidents")
	incidents.Use(CallerMiddleware(h.cfg, h.logger))
	{
		incidents.POST("/report", h.createReport)
		incidents.POST("/emergency", h.createEmergencyReport)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id", h.updateIncident)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
