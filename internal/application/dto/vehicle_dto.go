package dto

import "time"

// CreateVehicleRequest entrada para registrar un vehículo propio.
type CreateVehicleRequest struct {
	Make  string `json:"make" validate:"required"`
	Model string `json:"model" validate:"required"`
	Plate string `json:"plate" validate:"required"`
	Year  *int   `json:"year" validate:"omitempty,min=1900"`
}

// AdminCreateVehicleRequest entrada de admin para registrar un vehículo
// a nombre de un cliente, buscado por email.
type AdminCreateVehicleRequest struct {
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Make          string `json:"make" validate:"required"`
	Model         string `json:"model" validate:"required"`
	Plate         string `json:"plate" validate:"required"`
	Year          *int   `json:"year" validate:"omitempty,min=1900"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
