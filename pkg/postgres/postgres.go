package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_incident_system/internal/config"
)

const (
	pingAttempts = 5
	pingBackoff  = time.Second
)

// NewPostgresDB открывает пул соединений к хранилищу инцидентов.
// База в контейнере может подняться позже сервиса, поэтому ping повторяется.
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	if appCfg.DBMaxConns > 0 {
		poolCfg.MaxConns = appCfg.DBMaxConns
	}
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	if err := pingWithRetry(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func pingWithRetry(ctx context.Context, pool *pgxpool.Pool) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("не удалось выполнить ping к postgres после %d попыток: %w", pingAttempts, err)
}
