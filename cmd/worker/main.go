package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/taller-api/internal/application/notify"
	"github.com/jhoicas/taller-api/internal/infrastructure/mail"
	"github.com/jhoicas/taller-api/internal/infrastructure/rabbitmq"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// Worker de notificaciones: consume los eventos de cambio de estado y avisa al
// dueño del taller por correo cuando una orden llega a estado terminal.
// Sin drenaje de mensajes en vuelo: la cancelación es por señal del proceso.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("queue", cfg.Rabbit.Queue).Msg("iniciando worker de notificaciones")

	consumer, err := rabbitmq.NewConsumer(cfg.Rabbit.URL(), cfg.Rabbit.Queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	defer consumer.Close()

	mailer := mail.New(cfg.SMTP)
	handler := notify.NewEventHandler(mailer, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, handler.Handle); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("consumo de la cola finalizado con error")
	}

	log.Info().Msg("worker detenido")
}
