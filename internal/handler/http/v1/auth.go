package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_incident_system/internal/auth"
	"github.com/shenikar/disaster_incident_system/internal/config"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/sirupsen/logrus"
)

const callerKey = "caller"

// CallerMiddleware - middleware, восстанавливающее вызывающего из Bearer JWT.
// Запрос без заголовка Authorization считается анонимным; неверный токен - 401.
func CallerMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			log.Warn("Malformed Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "bearer token required"})
			return
		}

		caller, err := auth.ParseToken(cfg.JWTSecret, strings.TrimSpace(token))
		if err != nil {
			log.WithError(err).Warn("Invalid bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// callerFrom возвращает вызывающего из контекста запроса; nil для анонимного
func callerFrom(c *gin.Context) *models.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*models.Caller)
	return caller
}
