package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{pool: pool}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, user_id, make, model, plate, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		vehicle.ID, vehicle.UserID, vehicle.Make, vehicle.Model, vehicle.Plate, vehicle.Year, vehicle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, plate, year, created_at
		FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.UserID, &v.Make, &v.Model, &v.Plate, &v.Year, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}
	return &v, nil
}

// ListByUser lista los vehículos de un usuario.
func (r *VehicleRepo) ListByUser(userID string) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, plate, year, created_at
		FROM vehicles WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles by user: %w", err)
	}
	return scanVehicles(rows)
}

// List lista todos los vehículos (ruta de admin).
func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, plate, year, created_at
		FROM vehicles ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return scanVehicles(rows)
}

// Delete elimina un vehículo. Las órdenes que lo referencian quedan con vehicle_id NULL.
func (r *VehicleRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func scanVehicles(rows pgx.Rows) ([]*entity.Vehicle, error) {
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Plate, &v.Year, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
