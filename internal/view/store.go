// Package view guarda o último snapshot renderizado de cada dashboard, no
// formato lido pela camada de páginas.
package view

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

// Slice é o conteúdo de uma sub-busca. Stale indica que a última tentativa
// falhou e o conteúdo é de um ciclo anterior.
type Slice struct {
	Data      jsoniter.RawMessage `json:"data,omitempty"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
	Stale     bool                `json:"stale"`
	Error     *refresh.FetchError `json:"error,omitempty"`
}

// Snapshot é o que a página exibe para um dashboard
type Snapshot struct {
	Dashboard  string           `json:"dashboard"`
	CycleID    string           `json:"cycle_id"`
	Generation uint64           `json:"generation"`
	Query      string           `json:"query"`
	Origin     refresh.Origin   `json:"origin"`
	Status     refresh.Status   `json:"status"`
	Summary    string           `json:"summary,omitempty"`
	CachedAt   *time.Time       `json:"cached_at,omitempty"`
	RenderedAt time.Time        `json:"rendered_at"`
	Slices     map[string]Slice `json:"slices"`
}

// Store implementa refresh.Renderer mantendo um snapshot por dashboard
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	now       func() time.Time
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]*Snapshot),
		now:       time.Now,
	}
}

// Render mescla o resultado no snapshot do dashboard. Fatias com sucesso
// substituem as anteriores; fatias com erro mantêm o conteúdo antigo marcado.
func (s *Store) Render(ctx context.Context, result *refresh.Result) {
	if result == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.snapshots[result.Dashboard]
	if exists && current.Generation > result.Generation {
		log.ForContext(ctx).WithFields(log.Fields{
			"dashboard":  result.Dashboard,
			"cycle_id":   result.CycleID,
			"generation": result.Generation,
		}).Debug("view: resultado antigo ignorado")
		return
	}

	next := &Snapshot{
		Dashboard:  result.Dashboard,
		CycleID:    result.CycleID,
		Generation: result.Generation,
		Query:      result.Query,
		Origin:     result.Origin,
		Status:     result.Status,
		Summary:    result.Summary,
		CachedAt:   result.CachedAt,
		RenderedAt: s.now(),
		Slices:     make(map[string]Slice),
	}
	if exists {
		for name, slice := range current.Slices {
			next.Slices[name] = slice
		}
	}

	updatedAt := result.CompletedAt
	if result.CachedAt != nil {
		updatedAt = *result.CachedAt
	}

	for name, data := range result.Data {
		ts := updatedAt
		next.Slices[name] = Slice{Data: data, UpdatedAt: &ts}
	}

	for name, fetchErr := range result.Errors {
		slice := next.Slices[name]
		slice.Stale = slice.Data != nil
		slice.Error = fetchErr
		next.Slices[name] = slice
	}

	s.snapshots[result.Dashboard] = next
}

// Snapshot retorna uma cópia do último snapshot do dashboard
func (s *Store) Snapshot(dashboard string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, ok := s.snapshots[dashboard]
	if !ok {
		return Snapshot{}, false
	}

	out := *current
	out.Slices = make(map[string]Slice, len(current.Slices))
	for name, slice := range current.Slices {
		out.Slices[name] = slice
	}
	return out, true
}
