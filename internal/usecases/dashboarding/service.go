package dashboarding

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/dashboards"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/scheduler"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/view"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

// Summary é a linha de um dashboard na listagem
type Summary struct {
	Name        string                      `json:"name"`
	Title       string                      `json:"title"`
	Report      refresh.Report              `json:"status"`
	AutoRefresh scheduler.AutoRefreshStatus `json:"auto_refresh"`
}

// Detail é o dashboard com o snapshot renderizado
type Detail struct {
	Summary
	View *view.Snapshot `json:"view"`
}

// AutoRefreshUpdate traz apenas os campos enviados pelo cliente
type AutoRefreshUpdate struct {
	Enabled         *bool `json:"enabled"`
	IntervalSeconds *int  `json:"interval_seconds"`
}

// Service coordena controladores, auto-refresh e preferências salvas
type Service struct {
	registry *dashboards.Registry
	views    *view.Store
	prefs    preferences.Store

	mu         sync.RWMutex
	refreshers map[string]*scheduler.AutoRefresher
}

func NewService(registry *dashboards.Registry, views *view.Store, prefs preferences.Store) *Service {
	return &Service{
		registry:   registry,
		views:      views,
		prefs:      prefs,
		refreshers: make(map[string]*scheduler.AutoRefresher),
	}
}

// Start restaura as preferências salvas e liga o auto-refresh de cada dashboard.
// Com autoRefresh=false nenhum timer é ligado, independente das preferências.
func (s *Service) Start(ctx context.Context, autoRefresh bool) error {
	for _, d := range s.registry.All() {
		logger := log.ForContext(ctx).WithField("dashboard", d.Name)

		interval := d.Interval
		enabled := autoRefresh

		prefs, err := s.prefs.Load(ctx, d.Name)
		switch {
		case errors.Is(err, preferences.ErrNotFound):
			logger.Debug("dashboarding: sem preferências salvas, usando padrões")
		case err != nil:
			logger.WithError(err).Warn("dashboarding: erro ao carregar preferências, usando padrões")
		default:
			if err := d.Orchestrator.RestoreFilters(prefs.FilterValues()); err != nil {
				logger.WithError(err).Warn("dashboarding: filtros salvos inválidos, usando padrões")
			}
			if saved := time.Duration(prefs.LoopIntervalSeconds) * time.Second; saved >= scheduler.MinInterval && saved <= scheduler.MaxInterval {
				interval = saved
			}
			enabled = autoRefresh && prefs.AutoRefreshEnabled
		}

		refresher, err := scheduler.NewAutoRefresher(d.Name, d.Orchestrator, interval, enabled)
		if err != nil {
			return errors.Wrapf(err, "dashboarding: auto-refresh de %s", d.Name)
		}
		if err := refresher.Start(ctx); err != nil {
			return err
		}

		s.mu.Lock()
		s.refreshers[d.Name] = refresher
		s.mu.Unlock()
	}

	return nil
}

// Stop desliga todos os timers
func (s *Service) Stop() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, refresher := range s.refreshers {
		refresher.Stop()
	}
}

// List resume todos os dashboards
func (s *Service) List() []Summary {
	all := s.registry.All()
	out := make([]Summary, 0, len(all))
	for _, d := range all {
		out = append(out, s.summary(d))
	}
	return out
}

// Get retorna o snapshot do dashboard. Com load=true executa Load antes,
// servindo do cache quando válido.
func (s *Service) Get(ctx context.Context, name string, load bool) (*Detail, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	if load {
		_, err := d.Orchestrator.Load(ctx)
		switch {
		case errors.Is(err, refresh.ErrCycleInFlight):
			// o ciclo em andamento entrega o resultado; devolve o último snapshot
			log.ForContext(ctx).WithField("dashboard", name).Debug("dashboarding: carga já em andamento")
		case err != nil:
			return nil, err
		}
	}

	detail := &Detail{Summary: s.summary(d)}
	if snapshot, ok := s.views.Snapshot(name); ok {
		detail.View = &snapshot
	}
	return detail, nil
}

// Refresh é a atualização manual: invalida, recarrega e reinicia o timer
func (s *Service) Refresh(ctx context.Context, name string) (*refresh.Result, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	if refresher, ok := s.refresher(name); ok {
		return refresher.RefreshNow(ctx)
	}
	return d.Orchestrator.InvalidateAndReload(ctx)
}

// ApplyFilters aplica e persiste os filtros. A persistência acontece mesmo
// quando a recarga fica enfileirada.
func (s *Service) ApplyFilters(ctx context.Context, name string, changes filter.Values) (*refresh.Result, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	result, err := d.Orchestrator.ApplyFilters(ctx, changes)
	if err != nil && !errors.Is(err, refresh.ErrReloadQueued) {
		return nil, err
	}

	s.persist(ctx, d)
	return result, err
}

// ResetFilters volta aos padrões e persiste
func (s *Service) ResetFilters(ctx context.Context, name string) (*refresh.Result, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	result, err := d.Orchestrator.ResetFilters(ctx)
	if err != nil && !errors.Is(err, refresh.ErrReloadQueued) {
		return nil, err
	}

	s.persist(ctx, d)
	return result, err
}

// AutoRefresh retorna o estado do timer do dashboard
func (s *Service) AutoRefresh(name string) (scheduler.AutoRefreshStatus, error) {
	if _, err := s.registry.Get(name); err != nil {
		return scheduler.AutoRefreshStatus{}, err
	}

	refresher, ok := s.refresher(name)
	if !ok {
		return scheduler.AutoRefreshStatus{Dashboard: name}, nil
	}
	return refresher.Status(), nil
}

// UpdateAutoRefresh altera liga/desliga e intervalo, e persiste
func (s *Service) UpdateAutoRefresh(ctx context.Context, name string, update AutoRefreshUpdate) (scheduler.AutoRefreshStatus, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return scheduler.AutoRefreshStatus{}, err
	}

	refresher, ok := s.refresher(name)
	if !ok {
		return scheduler.AutoRefreshStatus{}, errors.Errorf("dashboarding: auto-refresh de %s não iniciado", name)
	}

	if update.IntervalSeconds != nil {
		if err := refresher.SetInterval(time.Duration(*update.IntervalSeconds) * time.Second); err != nil {
			return scheduler.AutoRefreshStatus{}, err
		}
	}
	if update.Enabled != nil {
		if err := refresher.SetEnabled(*update.Enabled); err != nil {
			return scheduler.AutoRefreshStatus{}, err
		}
	}

	s.persist(ctx, d)
	return refresher.Status(), nil
}

func (s *Service) summary(d *dashboards.Dashboard) Summary {
	summary := Summary{
		Name:   d.Name,
		Title:  d.Title,
		Report: d.Orchestrator.Report(),
	}
	if refresher, ok := s.refresher(d.Name); ok {
		summary.AutoRefresh = refresher.Status()
	} else {
		summary.AutoRefresh = scheduler.AutoRefreshStatus{
			Dashboard:       d.Name,
			IntervalSeconds: int(d.Interval.Seconds()),
		}
	}
	return summary
}

func (s *Service) refresher(name string) (*scheduler.AutoRefresher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refresher, ok := s.refreshers[name]
	return refresher, ok
}

// persist salva o estado corrente; falhas são apenas registradas.
// Os filtros vão como diferença dos padrões, com nil para padrões removidos,
// para que os padrões dependentes de data sigam atuais após um reinício.
func (s *Service) persist(ctx context.Context, d *dashboards.Dashboard) {
	overrides := d.Orchestrator.FilterOverrides()

	prefs := &preferences.Preferences{
		LoopIntervalSeconds: int(d.Interval.Seconds()),
		Filters:             filter.Values{},
	}
	for key, value := range overrides {
		if key == filter.KeyEmpresa && value != nil {
			continue
		}
		prefs.Filters[key] = value
	}
	switch companies := overrides[filter.KeyEmpresa].(type) {
	case []string:
		prefs.SelectedCompanies = companies
	case string:
		prefs.SelectedCompanies = []string{companies}
	}

	if refresher, ok := s.refresher(d.Name); ok {
		status := refresher.Status()
		prefs.AutoRefreshEnabled = status.Enabled
		prefs.LoopIntervalSeconds = status.IntervalSeconds
	}

	if err := s.prefs.Save(ctx, d.Name, prefs); err != nil {
		log.ForContext(ctx).WithField("dashboard", d.Name).WithError(err).Error("dashboarding: erro ao salvar preferências")
	}
}
