package usecase

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// OrderCache es el contrato mínimo que necesitan los use cases sobre el cache
// del listado de órdenes. Lo implementa *memcache.Cache.
type OrderCache interface {
	Get(key string) ([]byte, bool)
	SetJSON(key string, v interface{}) error
	Delete(key string) error
}

// EventPublisher publica eventos de cambio de estado. Lo implementa *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.StatusEvent) error
}
