package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/taller-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// schema del taller. Las reglas de cascada viven en la DB:
//   - borrar un user elimina sus vehicles y orders (ON DELETE CASCADE)
//   - borrar un vehicle deja las orders con vehicle_id NULL (ON DELETE SET NULL)
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('customer', 'mechanic', 'admin')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vehicles (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	make TEXT NOT NULL,
	model TEXT NOT NULL,
	plate TEXT NOT NULL,
	year INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	customer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	customer_name TEXT NOT NULL,
	vehicle TEXT NOT NULL,
	vehicle_id UUID REFERENCES vehicles(id) ON DELETE SET NULL,
	service_date DATE NOT NULL,
	status TEXT NOT NULL DEFAULT 'scheduled'
		CHECK (status IN ('scheduled', 'in_progress', 'done', 'finished', 'cancelled')),
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate crea el esquema si no existe. Dos instancias de la API pueden correr
// esto a la vez detrás del load balancer; la definición duplicada se tolera.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		if isDuplicateObject(err) {
			return nil
		}
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

// SeedAdmin siembra la cuenta admin inicial de forma idempotente.
// Si dos instancias siembran a la vez, el conflicto por email único se ignora.
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear password del admin: %w", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, 'admin', $5)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), cfg.AdminEmail, "Admin", string(hash), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sembrar admin: %w", err)
	}
	return nil
}
