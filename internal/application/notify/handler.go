package notify

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// OwnerMailer es el contrato mínimo hacia el correo. Lo implementa *mail.Mailer.
type OwnerMailer interface {
	SendOwnerNotification(subject, body string) error
}

// EventHandler procesa los eventos de la cola en el worker: deserializa el
// mensaje y notifica al dueño solo cuando una orden llega a estado terminal.
type EventHandler struct {
	mailer OwnerMailer
	log    *logger.Logger
}

// NewEventHandler construye el handler del worker.
func NewEventHandler(mailer OwnerMailer, log *logger.Logger) *EventHandler {
	return &EventHandler{mailer: mailer, log: log}
}

// Handle procesa el cuerpo de un mensaje. Un cuerpo que no es JSON se loguea
// como texto crudo y se confirma igual; solo el fallo del envío de correo
// devuelve error (y deja el mensaje sin confirmar para redelivery).
func (h *EventHandler) Handle(body []byte) error {
	var event entity.StatusEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warn().Str("raw", string(body)).Msg("evento no es JSON, se ignora")
		return nil
	}

	h.log.Info().
		Str("event", event.Event).
		Str("order_id", event.OrderID).
		Str("new_status", event.NewStatus).
		Msg("evento recibido")

	if event.Event != entity.EventOrderStatusChanged || !entity.TerminalStatus(event.NewStatus) {
		return nil
	}

	subject := fmt.Sprintf("Orden %s: %s", event.OrderID, event.NewStatus)
	msg := fmt.Sprintf(
		"La orden %s de %s (%s) pasó a estado %q.\nFecha de servicio: %s.\n",
		event.OrderID, event.CustomerName, event.Vehicle, event.NewStatus, event.ServiceDate,
	)
	if err := h.mailer.SendOwnerNotification(subject, msg); err != nil {
		return err
	}
	h.log.Info().Str("order_id", event.OrderID).Msg("notificación enviada al dueño")
	return nil
}
