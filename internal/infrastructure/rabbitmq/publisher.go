package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

const (
	dialAttempts = 30
	dialDelay    = 2 * time.Second
)

// dial conecta al broker con reintentos acotados y delay fijo:
// RabbitMQ tarda en arrancar dentro de docker-compose.
func dial(url string) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		time.Sleep(dialDelay)
	}
	return nil, fmt.Errorf("conectar a RabbitMQ tras %d intentos: %w", dialAttempts, err)
}

// declareQueue declara la cola durable compartida entre publisher y consumer.
func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declarar cola %s: %w", name, err)
	}
	return nil
}

// Publisher publica eventos de cambio de estado en una cola durable.
// Se construye al arrancar la API y se cierra en el shutdown.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher conecta al broker (con reintentos), abre un canal y declara la cola.
func NewPublisher(url, queue string) (*Publisher, error) {
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
	return &Publisher{conn: conn, channel: ch, queue: queue}, nil
}

// Publish serializa el evento y lo publica con delivery mode persistente.
// Es síncrono pero fire-and-forget: no espera confirmación del broker más allá
// de que el transporte acepte la escritura.
func (p *Publisher) Publish(ctx context.Context, event entity.StatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal evento: %w", err)
	}
	err = p.channel.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("publicar evento: %w", err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() {
	p.channel.Close()
	p.conn.Close()
}
