package entity

import "time"

// Estados válidos para Order. Conjunto plano: cualquier estado permitido es
// alcanzable desde cualquier otro, no hay grafo de transiciones.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusFinished   = "finished"
	StatusCancelled  = "cancelled"
)

// ValidStatus indica si el estado pertenece al conjunto cerrado de cinco valores.
func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusDone, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus indica si el estado dispara la notificación al dueño del taller.
func TerminalStatus(status string) bool {
	return status == StatusFinished || status == StatusCancelled
}

// Order representa una orden de servicio del taller.
// CustomerName y Vehicle son copias desnormalizadas al momento de crear la orden;
// VehicleID es opcional y se limpia (no cascada) si el vehículo se elimina.
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string
	Vehicle      string
	VehicleID    *string
	ServiceDate  time.Time
	Status       string
	Notes        string
	CreatedAt    time.Time
}
