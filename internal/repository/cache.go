package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_incident_system/internal/models"
	"github.com/shenikar/disaster_incident_system/internal/service"
)

const (
	// tombstone занимает ключ после записи, чтобы запоздалое чтение
	// не вернуло в кэш версию, прочитанную до обновления
	tombstone = "-"
	// staleReadWindow - сколько держится tombstone; дольше ни одно чтение не длится
	staleReadWindow = 30 * time.Second
)

// IncidentCache - кэш инцидентов по id в Redis
type IncidentCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewIncidentCache(redisClient *redis.Client, ttl time.Duration) service.IncidentCache {
	return &IncidentCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func incidentKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis; промах - (nil, nil)
func (c *IncidentCache) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := c.redisClient.Get(ctx, incidentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}
	if string(val) == tombstone {
		return nil, nil
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache кладет инцидент, только если ключ свободен:
// ни свежую запись, ни tombstone после обновления он не перезаписывает
func (c *IncidentCache) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := c.redisClient.SetNX(ctx, incidentKey(incident.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache заменяет запись tombstone на staleReadWindow
func (c *IncidentCache) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	if err := c.redisClient.Set(ctx, incidentKey(id), tombstone, staleReadWindow).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
