package entity

import (
	"fmt"
	"time"
)

// Vehicle representa un vehículo registrado por un cliente del taller.
type Vehicle struct {
	ID        string
	UserID    string
	Make      string
	Model     string
	Plate     string
	Year      *int
	CreatedAt time.Time
}

// Description devuelve la descripción legible que se desnormaliza en las órdenes.
func (v Vehicle) Description() string {
	if v.Year != nil {
		return fmt.Sprintf("%s %s (%d) %s", v.Make, v.Model, *v.Year, v.Plate)
	}
	return fmt.Sprintf("%s %s %s", v.Make, v.Model, v.Plate)
}
