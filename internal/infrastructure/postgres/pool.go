package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/taller-api/pkg/config"
)

const (
	readinessAttempts = 30
	readinessDelay    = time.Second
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Antes de devolver el pool hace un probe de readiness con reintentos acotados:
// en docker-compose la DB suele tardar en aceptar conexiones más que la API.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if attempt >= readinessAttempts {
			break
		}
		time.Sleep(readinessDelay)
	}
	pool.Close()
	return nil, fmt.Errorf("ping DB tras %d intentos: %w", readinessAttempts, err)
}
