package repository

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar órdenes.
// CustomerID limita al dueño (scope de cliente); Status y ServiceDate son
// los filtros de query string.
type OrderFilter struct {
	Status      string
	ServiceDate *time.Time
	CustomerID  string
}

// Empty indica si el filtro no restringe nada (listado completo, cacheable).
func (f OrderFilter) Empty() bool {
	return f.Status == "" && f.ServiceDate == nil && f.CustomerID == ""
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
}
