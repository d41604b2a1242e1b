package entity

// EventOrderStatusChanged etiqueta del evento de cambio de estado de una orden.
const EventOrderStatusChanged = "order_status_changed"

// StatusEvent es el mensaje efímero que viaja por la cola entre publish y ack.
// No se persiste.
type StatusEvent struct {
	Event        string `json:"event"`
	OrderID      string `json:"order_id"`
	NewStatus    string `json:"new_status"`
	ServiceDate  string `json:"service_date"`
	CustomerName string `json:"customer_name"`
	Vehicle      string `json:"vehicle"`
}
