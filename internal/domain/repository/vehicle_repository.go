package repository

import "github.com/jhoicas/taller-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	ListByUser(userID string) ([]*entity.Vehicle, error)
	List() ([]*entity.Vehicle, error)
	// Delete elimina el vehículo; las órdenes que lo referencian quedan con vehicle_id NULL.
	Delete(id string) error
}
