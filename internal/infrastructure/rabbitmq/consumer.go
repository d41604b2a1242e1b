package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// prefetchCount mensajes en vuelo como máximo; el worker procesa de a uno.
const prefetchCount = 10

// Handler procesa el cuerpo de un mensaje. Si devuelve error el mensaje
// no se confirma (ver política de redelivery en Consume).
type Handler func(body []byte) error

// Consumer consume eventos de la cola durable con ack manual.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *logger.Logger
}

// NewConsumer conecta al broker (con reintentos), declara la cola y fija el prefetch.
func NewConsumer(url, queue string, log *logger.Logger) (*Consumer, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("fijar prefetch: %w", err)
	}
	return &Consumer{conn: conn, channel: ch, queue: queue, log: log}, nil
}

// Consume procesa mensajes secuencialmente hasta que el contexto se cancele o el
// canal se cierre. Ack solo tras procesar con éxito. En error: el mensaje se
// reencola una vez; si ya venía redelivered se descarta con log para no ciclar
// indefinidamente con un mensaje venenoso.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack: queremos ack manual
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("registrar consumer: %w", err)
	}

	c.log.Info().Str("queue", c.queue).Msg("escuchando la cola de eventos")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de entrega cerrado")
			}
			if err := handler(d.Body); err != nil {
				if d.Redelivered {
					c.log.Error().Err(err).Str("queue", c.queue).
						Msg("mensaje falló en el reintento, se descarta")
					_ = d.Reject(false)
					continue
				}
				c.log.Warn().Err(err).Str("queue", c.queue).
					Msg("mensaje falló, se reencola")
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Close cierra canal y conexión.
func (c *Consumer) Close() {
	c.channel.Close()
	c.conn.Close()
}
