package dashboards

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

// ErrUnknownDashboard indica um nome fora do catálogo
var ErrUnknownDashboard = errors.New("dashboards: dashboard desconhecido")

// Deps são as dependências compartilhadas pelos controladores
type Deps struct {
	Source       refresh.Source
	Renderer     refresh.Renderer
	CacheTTL     time.Duration
	CycleTimeout time.Duration
	// Intervals sobrepõe o intervalo de auto-refresh do catálogo
	Intervals map[string]time.Duration
	Now       func() time.Time
	Logger    log.Logger
}

// Dashboard junta a definição ao seu controlador
type Dashboard struct {
	Definition
	Orchestrator *refresh.Orchestrator
}

// Registry indexa os dashboards por nome
type Registry struct {
	byName map[string]*Dashboard
	order  []*Dashboard
}

// NewRegistry cria um controlador por definição. Os filtros padrão partem da
// data corrente e são recalculados pelo orquestrador a cada ciclo.
func NewRegistry(defs []Definition, deps Deps) (*Registry, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = log.L
	}

	for name := range deps.Intervals {
		if !contains(defs, name) {
			return nil, errors.Wrapf(ErrUnknownDashboard, "intervalo configurado para %q", name)
		}
	}

	registry := &Registry{byName: make(map[string]*Dashboard, len(defs))}
	now := deps.Now()

	for _, def := range defs {
		if _, dup := registry.byName[def.Name]; dup {
			return nil, errors.Errorf("dashboards: %q registrado duas vezes", def.Name)
		}

		var defaults filter.Values
		if def.Defaults != nil {
			defaults = def.Defaults(now)
		}

		filters, err := filter.New(defaults)
		if err != nil {
			return nil, errors.Wrapf(err, "dashboards: filtros padrão de %s", def.Name)
		}

		if interval, ok := deps.Intervals[def.Name]; ok {
			def.Interval = interval
		}

		orch, err := refresh.New(refresh.Config{
			Dashboard:    def.Name,
			SubFetches:   def.SubFetches,
			CacheTTL:     deps.CacheTTL,
			CycleTimeout: deps.CycleTimeout,
			Defaults:     def.Defaults,
		}, filters, deps.Source, deps.Renderer, refresh.WithClock(deps.Now), refresh.WithLogger(deps.Logger))
		if err != nil {
			return nil, err
		}

		dashboard := &Dashboard{Definition: def, Orchestrator: orch}
		registry.byName[def.Name] = dashboard
		registry.order = append(registry.order, dashboard)
	}

	return registry, nil
}

// Get busca um dashboard pelo nome
func (r *Registry) Get(name string) (*Dashboard, error) {
	dashboard, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDashboard, "%q", name)
	}
	return dashboard, nil
}

// All retorna os dashboards na ordem do catálogo
func (r *Registry) All() []*Dashboard {
	return append([]*Dashboard(nil), r.order...)
}

func contains(defs []Definition, name string) bool {
	for _, def := range defs {
		if def.Name == name {
			return true
		}
	}
	return false
}
