// Package cache implementa o cache de slot único usado por cada dashboard.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL é o tempo de vida adotado pelos dashboards operacionais
const DefaultTTL = 5 * time.Minute

// Entry é o último resultado armazenado e o instante em que foi criado
type Entry[T any] struct {
	Data      T
	Timestamp time.Time
}

// Stats acumula contadores de uso do cache
type Stats struct {
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Invalidations uint64 `json:"invalidations"`
	Expirations   uint64 `json:"expirations"`
}

// Option configura um DataCache
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock troca a fonte de tempo, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// DataCache guarda um único resultado e o expira de forma preguiçosa:
// a validade é conferida a cada Get, não há timer em background.
type DataCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	entry *Entry[T]
	stats Stats
}

// New cria um cache com TTL fixo. ttl <= 0 usa DefaultTTL.
func New[T any](ttl time.Duration, opts ...Option) *DataCache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &DataCache[T]{
		ttl: ttl,
		now: o.now,
	}
}

// TTL retorna o tempo de vida configurado
func (c *DataCache[T]) TTL() time.Duration {
	return c.ttl
}

// Get retorna a entrada somente se presente e dentro do TTL
func (c *DataCache[T]) Get() (Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		c.stats.Misses++
		return Entry[T]{}, false
	}

	if !c.fresh(c.entry) {
		c.entry = nil
		c.stats.Expirations++
		c.stats.Misses++
		return Entry[T]{}, false
	}

	c.stats.Hits++
	return *c.entry, true
}

// Peek retorna o timestamp da entrada válida sem alterar os contadores
func (c *DataCache[T]) Peek() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil || !c.fresh(c.entry) {
		return time.Time{}, false
	}
	return c.entry.Timestamp, true
}

// Set substitui incondicionalmente a entrada anterior
func (c *DataCache[T]) Set(data T) Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = &Entry[T]{Data: data, Timestamp: c.now()}
	return *c.entry
}

// Invalidate descarta a entrada imediatamente
func (c *DataCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil {
		c.stats.Invalidations++
	}
	c.entry = nil
}

// Stats retorna uma cópia dos contadores
func (c *DataCache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *DataCache[T]) fresh(entry *Entry[T]) bool {
	return c.now().Sub(entry.Timestamp) < c.ttl
}
