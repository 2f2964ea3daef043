package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_incident_system/internal/config"
)

// CORSMiddleware разрешает браузерным клиентам из CORS_ORIGINS обращаться к API
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "X-Requested-With", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(cfg.CORSOrigins) == 0
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	return cors.New(corsCfg)
}
