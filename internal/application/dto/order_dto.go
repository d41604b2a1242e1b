package dto

import "time"

// DateLayout formato de service_date en la API (solo fecha).
const DateLayout = "2006-01-02"

// CreateOrderRequest entrada para crear una orden propia.
type CreateOrderRequest struct {
	VehicleID   *string `json:"vehicle_id" validate:"omitempty,uuid"`
	ServiceDate string  `json:"service_date" validate:"required"`
	Notes       string  `json:"notes" validate:"omitempty,max=2000"`
}

// AdminCreateOrderRequest entrada de admin para crear una orden
// a nombre de un cliente, buscado por email.
type AdminCreateOrderRequest struct {
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	VehicleID     *string `json:"vehicle_id" validate:"omitempty,uuid"`
	ServiceDate   string  `json:"service_date" validate:"required"`
	Notes         string  `json:"notes" validate:"omitempty,max=2000"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Vehicle      string    `json:"vehicle"`
	VehicleID    *string   `json:"vehicle_id,omitempty"`
	ServiceDate  string    `json:"service_date"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
