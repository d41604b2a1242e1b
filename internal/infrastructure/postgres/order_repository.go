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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, customer_name, vehicle, vehicle_id, service_date, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.CustomerName, order.Vehicle, order.VehicleID,
		order.ServiceDate, order.Status, order.Notes, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, vehicle, vehicle_id, service_date, status, notes, created_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.Vehicle, &o.VehicleID,
		&o.ServiceDate, &o.Status, &o.Notes, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return &o, nil
}

// List lista órdenes aplicando los filtros no vacíos.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, vehicle, vehicle_id, service_date, status, notes, created_at
		FROM orders WHERE 1=1`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ServiceDate != nil {
		args = append(args, *filter.ServiceDate)
		query += fmt.Sprintf(" AND service_date = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Vehicle, &o.VehicleID,
			&o.ServiceDate, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una orden.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	tag, err := r.pool.Exec(context.Background(), `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
