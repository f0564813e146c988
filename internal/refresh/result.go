package refresh

import (
	"fmt"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Status é o desfecho de um ciclo de carga
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialFailure Status = "partial_failure"
	StatusFailure        Status = "failure"
)

// Origin indica de onde veio o resultado entregue ao renderer
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginCache   Origin = "cache"
)

// Result é o agregado de um RequestCycle: as fatias que chegaram e um
// indicador de erro para cada sub-busca que falhou.
type Result struct {
	Dashboard   string                         `json:"dashboard"`
	CycleID     string                         `json:"cycle_id"`
	Generation  uint64                         `json:"generation"`
	Query       string                         `json:"query"`
	Origin      Origin                         `json:"origin"`
	Status      Status                         `json:"status"`
	Data        map[string]jsoniter.RawMessage `json:"data"`
	Errors      map[string]*FetchError         `json:"errors,omitempty"`
	Summary     string                         `json:"summary,omitempty"`
	StartedAt   time.Time                      `json:"started_at"`
	CompletedAt time.Time                      `json:"completed_at"`
	CachedAt    *time.Time                     `json:"cached_at,omitempty"`

	primaryOK bool
}

// Failed retorna os nomes das sub-buscas com erro, em ordem alfabética
func (r *Result) Failed() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Duration é o tempo de rede do ciclo
func (r *Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// fromCache devolve uma cópia marcada como servida do cache
func (r *Result) fromCache(cachedAt time.Time) *Result {
	out := *r
	out.Origin = OriginCache
	out.CachedAt = &cachedAt
	return &out
}

func (r *Result) settle(total int) {
	failed := len(r.Errors)
	switch {
	case failed == 0:
		r.Status = StatusSuccess
	case failed == total:
		r.Status = StatusFailure
	default:
		r.Status = StatusPartialFailure
	}
	r.Summary = summarize(r, total)
}

// summarize monta a mensagem exibida ao usuário quando alguma sub-busca falha
func summarize(r *Result, total int) string {
	if len(r.Errors) == 0 {
		return ""
	}

	if r.Status == StatusFailure {
		return "Não foi possível atualizar o dashboard: todas as consultas falharam"
	}

	parts := make([]string, 0, len(r.Errors))
	for _, name := range r.Failed() {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, r.Errors[name].Kind))
	}

	return fmt.Sprintf("%d de %d consultas falharam: %s", len(r.Errors), total, strings.Join(parts, ", "))
}
