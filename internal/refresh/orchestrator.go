// Package refresh coordena os ciclos de carga de um dashboard: decide entre
// cache e rede, dispara as sub-buscas em paralelo e entrega o agregado ao renderer.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/cache"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/utils"
)

// DefaultCycleTimeout limita a duração de um ciclo completo
const DefaultCycleTimeout = time.Minute

// State é o estado do controlador entre ciclos
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
)

// SubFetch é uma das consultas paralelas que compõem o dashboard
type SubFetch struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Primary  bool   `json:"primary"`
}

// Config descreve o dashboard controlado pelo orquestrador
type Config struct {
	Dashboard    string
	SubFetches   []SubFetch
	CacheTTL     time.Duration
	CycleTimeout time.Duration
	// Defaults recalcula os filtros padrão na data corrente. Quando
	// informado, é avaliado no início de cada ciclo e em todo reset.
	Defaults func(time.Time) filter.Values
}

// Option customiza um Orchestrator
type Option func(*Orchestrator)

// WithClock troca a fonte de tempo do orquestrador e do cache
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithLogger troca o logger base
func WithLogger(logger log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator é o controlador de um dashboard. Todo estado mutável fica
// atrás de mu; os filtros só mudam por ApplyFilters, ResetFilters e RestoreFilters.
type Orchestrator struct {
	name         string
	subFetches   []SubFetch
	cycleTimeout time.Duration
	defaults     func(time.Time) filter.Values
	source       Source
	renderer     Renderer
	cache        *cache.DataCache[*Result]
	logger       log.Logger
	now          func() time.Time

	mu         sync.Mutex
	filters    *filter.State
	generation uint64
	loading    bool
	pending    bool
	state      State
	last       *Result

	// serializa as entregas ao renderer
	renderMu sync.Mutex
}

// New valida a configuração e monta o orquestrador com um cache próprio
func New(cfg Config, filters *filter.State, source Source, renderer Renderer, opts ...Option) (*Orchestrator, error) {
	if cfg.Dashboard == "" {
		return nil, errors.New("refresh: nome do dashboard é obrigatório")
	}
	if filters == nil || source == nil || renderer == nil {
		return nil, errors.Errorf("refresh: %s: filtros, source e renderer são obrigatórios", cfg.Dashboard)
	}

	subFetches, err := normalizeSubFetches(cfg.Dashboard, cfg.SubFetches)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		name:         cfg.Dashboard,
		subFetches:   subFetches,
		cycleTimeout: cfg.CycleTimeout,
		defaults:     cfg.Defaults,
		source:       source,
		renderer:     renderer,
		logger:       log.L,
		now:          time.Now,
		filters:      filters.Clone(),
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.cycleTimeout <= 0 {
		o.cycleTimeout = DefaultCycleTimeout
	}
	o.logger = o.logger.WithField("dashboard", cfg.Dashboard)
	o.cache = cache.New[*Result](cfg.CacheTTL, cache.WithClock(o.now))

	return o, nil
}

// normalizeSubFetches exige nomes únicos e exatamente uma busca primária.
// Sem primária marcada, a primeira da lista assume o papel.
func normalizeSubFetches(dashboard string, in []SubFetch) ([]SubFetch, error) {
	if len(in) == 0 {
		return nil, errors.Errorf("refresh: %s: ao menos uma sub-busca é necessária", dashboard)
	}

	out := make([]SubFetch, len(in))
	copy(out, in)

	seen := make(map[string]struct{}, len(out))
	primaries := 0
	for _, sf := range out {
		if sf.Name == "" || sf.Endpoint == "" {
			return nil, errors.Errorf("refresh: %s: sub-busca sem nome ou endpoint", dashboard)
		}
		if _, dup := seen[sf.Name]; dup {
			return nil, errors.Errorf("refresh: %s: sub-busca duplicada %q", dashboard, sf.Name)
		}
		seen[sf.Name] = struct{}{}
		if sf.Primary {
			primaries++
		}
	}

	switch {
	case primaries == 0:
		out[0].Primary = true
	case primaries > 1:
		return nil, errors.Errorf("refresh: %s: apenas uma sub-busca pode ser primária", dashboard)
	}

	return out, nil
}

// Name retorna o nome do dashboard
func (o *Orchestrator) Name() string {
	return o.name
}

// SubFetches retorna a definição das sub-buscas
func (o *Orchestrator) SubFetches() []SubFetch {
	out := make([]SubFetch, len(o.subFetches))
	copy(out, o.subFetches)
	return out
}

// Filters retorna uma cópia dos filtros correntes
func (o *Orchestrator) Filters() filter.Values {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters.Values()
}

// FilterOverrides retorna os filtros como diferença dos padrões, no formato
// aceito por RestoreFilters
func (o *Orchestrator) FilterOverrides() filter.Values {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters.Overrides()
}

// Query retorna a query serializada dos filtros correntes
func (o *Orchestrator) Query() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters.Serialize()
}

// Load serve do cache quando válido; caso contrário executa um ciclo de rede.
// Com um ciclo em andamento a chamada não faz nada e retorna ErrCycleInFlight.
func (o *Orchestrator) Load(ctx context.Context) (*Result, error) {
	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		o.logger.WithContext(ctx).Debug("refresh: carga ignorada, ciclo em andamento")
		return nil, ErrCycleInFlight
	}

	o.rebaseLocked()

	if entry, ok := o.cache.Get(); ok {
		o.mu.Unlock()
		result := entry.Data.fromCache(entry.Timestamp)
		o.publish(ctx, result)
		return result, nil
	}

	o.loading = true
	o.state = StateLoading
	o.mu.Unlock()

	return o.run(ctx)
}

// InvalidateAndReload descarta o cache e recarrega. Durante um ciclo em
// andamento a recarga fica pendente e roda assim que ele terminar.
func (o *Orchestrator) InvalidateAndReload(ctx context.Context) (*Result, error) {
	return o.reload(ctx, nil)
}

// ApplyFilters aplica as alterações de forma atômica e recarrega
func (o *Orchestrator) ApplyFilters(ctx context.Context, changes filter.Values) (*Result, error) {
	return o.reload(ctx, func(state *filter.State) error {
		return state.Apply(changes)
	})
}

// ResetFilters volta aos filtros padrão e recarrega
func (o *Orchestrator) ResetFilters(ctx context.Context) (*Result, error) {
	return o.reload(ctx, o.resetLocked)
}

// RestoreFilters aplica filtros salvos sobre os padrões, sem disparar carga
func (o *Orchestrator) RestoreFilters(saved filter.Values) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	candidate := o.filters.Clone()
	if err := o.resetLocked(candidate); err != nil {
		return err
	}
	if err := candidate.Apply(saved); err != nil {
		return err
	}

	o.bumpLocked(candidate)
	if o.loading {
		o.pending = true
	}
	return nil
}

func (o *Orchestrator) reload(ctx context.Context, mutate func(*filter.State) error) (*Result, error) {
	o.mu.Lock()
	if mutate != nil {
		candidate := o.filters.Clone()
		if err := mutate(candidate); err != nil {
			o.mu.Unlock()
			return nil, err
		}
		o.bumpLocked(candidate)
	}

	// invalidação síncrona, antes de qualquer nova busca
	o.cache.Invalidate()

	if o.loading {
		o.pending = true
		o.mu.Unlock()
		o.logger.WithContext(ctx).Info("refresh: recarga enfileirada para depois do ciclo em andamento")
		return nil, ErrReloadQueued
	}

	o.loading = true
	o.state = StateLoading
	o.mu.Unlock()

	return o.run(ctx)
}

// resetLocked volta aos padrões, recalculados na data corrente quando possível
func (o *Orchestrator) resetLocked(state *filter.State) error {
	if o.defaults == nil {
		state.Reset()
		return nil
	}
	_, err := state.ResetTo(o.defaults(o.now()))
	return err
}

// rebaseLocked atualiza os padrões que dependem da data, como a janela dos
// últimos 30 dias e o ano corrente. Valores escolhidos pelo usuário ficam.
func (o *Orchestrator) rebaseLocked() {
	if o.defaults == nil {
		return
	}

	candidate := o.filters.Clone()
	changed, err := candidate.Rebase(o.defaults(o.now()))
	if err != nil {
		o.logger.WithError(err).Warn("refresh: padrões recalculados inválidos, mantendo os anteriores")
		return
	}
	if changed {
		o.logger.WithField("query", candidate.Serialize()).Info("refresh: filtros padrão avançaram com a data")
		o.bumpLocked(candidate)
		return
	}
	// mesma query, mas o snapshot de padrões pode ter mudado
	o.filters = candidate
}

// bumpLocked troca os filtros e avança a geração; resultados de gerações
// anteriores passam a ser descartados.
func (o *Orchestrator) bumpLocked(next *filter.State) {
	o.filters = next
	o.generation++
	o.cache.Invalidate()
}

// run executa ciclos até não haver recarga pendente. Deve ser chamado com
// loading=true; a flag é liberada aqui, inclusive em caso de panic.
func (o *Orchestrator) run(ctx context.Context) (*Result, error) {
	released := false
	defer func() {
		if released {
			return
		}
		o.mu.Lock()
		o.loading = false
		o.pending = false
		o.state = StateIdle
		o.mu.Unlock()
	}()

	var result *Result
	for {
		o.mu.Lock()
		o.pending = false
		o.rebaseLocked()
		snapshot := o.filters.Clone()
		generation := o.generation
		o.mu.Unlock()

		result = o.cycleWithTimeout(ctx, snapshot, generation)

		o.mu.Lock()
		stale := generation != o.generation
		if !stale {
			o.last = result
			if result.primaryOK {
				o.cache.Set(result)
			}
		}
		o.mu.Unlock()

		if stale {
			o.logger.WithFields(log.Fields{
				"cycle_id":   result.CycleID,
				"generation": generation,
			}).Info("refresh: resultado de filtros antigos descartado")
		} else {
			o.publish(ctx, result)
		}

		o.mu.Lock()
		if !o.pending {
			o.loading = false
			o.state = StateIdle
			released = true
			o.mu.Unlock()
			break
		}
		o.mu.Unlock()

		o.logger.WithContext(ctx).Info("refresh: executando recarga pendente")
	}

	return result, nil
}

// cycleWithTimeout desacopla o ciclo do cancelamento de quem o disparou:
// uma requisição HTTP encerrada não interrompe a carga já iniciada.
func (o *Orchestrator) cycleWithTimeout(ctx context.Context, snapshot *filter.State, generation uint64) *Result {
	cycleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.cycleTimeout)
	defer cancel()
	return o.cycle(cycleCtx, snapshot, generation)
}

// cycle dispara todas as sub-buscas com o mesmo snapshot de filtros e espera
// todas terminarem. Uma falha nunca cancela as demais.
func (o *Orchestrator) cycle(ctx context.Context, snapshot *filter.State, generation uint64) *Result {
	query := snapshot.Serialize()
	result := &Result{
		Dashboard:  o.name,
		CycleID:    utils.CycleID(generation),
		Generation: generation,
		Query:      query,
		Origin:     OriginNetwork,
		Data:       make(map[string]jsoniter.RawMessage, len(o.subFetches)),
		Errors:     make(map[string]*FetchError),
		StartedAt:  o.now(),
	}

	logger := o.logger.WithContext(ctx).WithFields(log.Fields{
		"cycle_id":   result.CycleID,
		"generation": generation,
		"query":      query,
	})
	logger.Info("refresh: iniciando ciclo de carga")

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, sf := range o.subFetches {
		sf := sf
		g.Go(func() error {
			data, err := o.fetch(ctx, sf, query)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Errors[sf.Name] = newFetchError(err)
				logger.WithField("sub_fetch", sf.Name).WithError(err).Error("refresh: sub-busca falhou")
				return nil
			}

			result.Data[sf.Name] = data
			if sf.Primary {
				result.primaryOK = true
			}
			return nil
		})
	}
	_ = g.Wait() // as goroutines nunca retornam erro

	result.CompletedAt = o.now()
	result.settle(len(o.subFetches))

	entry := logger.WithFields(log.Fields{
		"duration_ms": result.Duration().Milliseconds(),
		"status":      result.Status,
	})
	switch result.Status {
	case StatusSuccess:
		entry.Info("refresh: ciclo concluído")
	case StatusPartialFailure:
		entry.Warn("refresh: ciclo concluído com falhas parciais: ", result.Summary)
	default:
		entry.Error("refresh: ciclo falhou: ", result.Summary)
	}

	return result
}

func (o *Orchestrator) fetch(ctx context.Context, sf SubFetch, query string) (data jsoniter.RawMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{subFetch: sf.Name, value: r}
		}
	}()
	return o.source.Fetch(ctx, sf.Endpoint, query)
}

// publish entrega o resultado ao renderer se ele ainda pertence à geração corrente
func (o *Orchestrator) publish(ctx context.Context, result *Result) bool {
	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	o.mu.Lock()
	current := o.generation
	o.mu.Unlock()

	if result.Generation != current {
		o.logger.WithField("cycle_id", result.CycleID).Debug("refresh: render ignorado, geração antiga")
		return false
	}

	o.renderer.Render(ctx, result)
	return true
}

type panicError struct {
	subFetch string
	value    any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic na sub-busca %s: %v", e.subFetch, e.value)
}

func (e *panicError) Kind() string {
	return KindPanic
}

// CycleReport resume o último ciclo de rede aceito
type CycleReport struct {
	CycleID     string    `json:"cycle_id"`
	Generation  uint64    `json:"generation"`
	Status      Status    `json:"status"`
	Query       string    `json:"query"`
	Failed      []string  `json:"failed,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMS  int64     `json:"duration_ms"`
}

// Report é a fotografia do controlador exposta pela API
type Report struct {
	Dashboard       string        `json:"dashboard"`
	State           State         `json:"state"`
	Generation      uint64        `json:"generation"`
	ReloadPending   bool          `json:"reload_pending"`
	Query           string        `json:"query"`
	Filters         filter.Values `json:"filters"`
	Defaults        filter.Values `json:"defaults"`
	SubFetches      []SubFetch    `json:"sub_fetches"`
	CacheTTLSeconds float64       `json:"cache_ttl_seconds"`
	CachedAt        *time.Time    `json:"cached_at,omitempty"`
	Cache           cache.Stats   `json:"cache"`
	LastCycle       *CycleReport  `json:"last_cycle,omitempty"`
}

// Report monta o estado corrente sem disparar cargas
func (o *Orchestrator) Report() Report {
	o.mu.Lock()
	defer o.mu.Unlock()

	report := Report{
		Dashboard:       o.name,
		State:           o.state,
		Generation:      o.generation,
		ReloadPending:   o.pending,
		Query:           o.filters.Serialize(),
		Filters:         o.filters.Values(),
		Defaults:        o.filters.Defaults(),
		SubFetches:      o.SubFetches(),
		CacheTTLSeconds: o.cache.TTL().Seconds(),
		Cache:           o.cache.Stats(),
	}

	if cachedAt, ok := o.cache.Peek(); ok {
		report.CachedAt = &cachedAt
	}

	if last := o.last; last != nil {
		report.LastCycle = &CycleReport{
			CycleID:     last.CycleID,
			Generation:  last.Generation,
			Status:      last.Status,
			Query:       last.Query,
			Failed:      last.Failed(),
			Summary:     last.Summary,
			StartedAt:   last.StartedAt,
			CompletedAt: last.CompletedAt,
			DurationMS:  last.Duration().Milliseconds(),
		}
	}

	return report
}
