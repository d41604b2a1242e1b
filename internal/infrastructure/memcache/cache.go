package memcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gomemcache "github.com/bradfitz/gomemcache/memcache"
)

// KeyOrdersAll es la única clave cacheada: el listado completo de órdenes sin filtros.
// Los listados filtrados nunca se cachean; se prefiere perder cobertura de cache a
// servir una vista filtrada obsoleta.
const KeyOrdersAll = "orders:all"

// Cache wrapper JSON sobre memcached con TTL fijo.
// Cliente construido e inyectado explícitamente, nunca un singleton de paquete.
type Cache struct {
	client *gomemcache.Client
	ttl    int32
}

// New construye el cache apuntando a addr (host:port) con el TTL dado.
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: gomemcache.New(addr),
		ttl:    int32(ttl / time.Second),
	}
}

// Get devuelve el valor crudo de la clave, o false si no existe.
// Un memcached caído se trata como cache miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	item, err := c.client.Get(key)
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

// SetJSON serializa v y lo guarda bajo key con el TTL fijo del cache.
func (c *Cache) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	if err := c.client.Set(&gomemcache.Item{Key: key, Value: data, Expiration: c.ttl}); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}
	return nil
}

// Delete invalida la clave. Que no exista no es un error.
func (c *Cache) Delete(key string) error {
	err := c.client.Delete(key)
	if err != nil && !errors.Is(err, gomemcache.ErrCacheMiss) {
		return fmt.Errorf("delete cache key %s: %w", key, err)
	}
	return nil
}

// Close cierra las conexiones abiertas hacia memcached.
func (c *Cache) Close() error {
	return c.client.Close()
}
