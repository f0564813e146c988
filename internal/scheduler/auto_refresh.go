package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
)

// Limites do intervalo de auto-refresh aceitos pelos dashboards
const (
	MinInterval = 30 * time.Second
	MaxInterval = 10 * time.Minute
)

// ErrInvalidInterval indica um intervalo fora dos limites
var ErrInvalidInterval = errors.New("scheduler: intervalo de auto-refresh inválido")

// AutoRefreshStatus representa o estado exposto pela API
type AutoRefreshStatus struct {
	Dashboard       string     `json:"dashboard"`
	Enabled         bool       `json:"enabled"`
	IntervalSeconds int        `json:"interval_seconds"`
	NextRunAt       *time.Time `json:"next_run_at,omitempty"`
	LastRunAt       *time.Time `json:"last_run_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
}

// AutoRefresher dispara InvalidateAndReload periodicamente para um dashboard
type AutoRefresher struct {
	scheduler *gocron.Scheduler
	dashboard string
	reloader  Reloader

	mu        sync.Mutex
	ctx       context.Context
	enabled   bool
	interval  time.Duration
	job       *gocron.Job
	lastRunAt time.Time
	lastError string
}

// NewAutoRefresher cria o agendador de um dashboard. O job só é registrado no Start.
func NewAutoRefresher(dashboard string, reloader Reloader, interval time.Duration, enabled bool) (*AutoRefresher, error) {
	if err := validateInterval(interval); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"dashboard":        dashboard,
		"interval_seconds": int(interval.Seconds()),
		"enabled":          enabled,
	}).Info("Configuração do auto-refresh carregada")

	return &AutoRefresher{
		scheduler: gocron.NewScheduler(time.Local),
		dashboard: dashboard,
		reloader:  reloader,
		enabled:   enabled,
		interval:  interval,
		ctx:       context.Background(),
	}, nil
}

func validateInterval(interval time.Duration) error {
	if interval < MinInterval || interval > MaxInterval {
		return errors.Wrapf(ErrInvalidInterval, "%s fora de [%s, %s]", interval, MinInterval, MaxInterval)
	}
	return nil
}

// Start inicia o agendador; ele para quando o contexto é cancelado
func (a *AutoRefresher) Start(ctx context.Context) error {
	a.mu.Lock()
	a.ctx = ctx
	err := a.rescheduleLocked()
	a.mu.Unlock()
	if err != nil {
		return err
	}

	a.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.WithField("dashboard", a.dashboard).Info("Parando auto-refresh")
		a.Stop()
	}()

	return nil
}

// Stop encerra o agendador
func (a *AutoRefresher) Stop() {
	if a.scheduler.IsRunning() {
		a.scheduler.Stop()
	}
}

// SetEnabled liga ou desliga o timer sem disparar carga
func (a *AutoRefresher) SetEnabled(enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled == enabled {
		return nil
	}
	a.enabled = enabled

	logrus.WithFields(logrus.Fields{
		"dashboard": a.dashboard,
		"enabled":   enabled,
	}).Info("Auto-refresh alterado")

	return a.rescheduleLocked()
}

// SetInterval troca o intervalo e reinicia a contagem
func (a *AutoRefresher) SetInterval(interval time.Duration) error {
	if err := validateInterval(interval); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.interval = interval
	return a.rescheduleLocked()
}

// RefreshNow recarrega imediatamente e reinicia a contagem do timer
func (a *AutoRefresher) RefreshNow(ctx context.Context) (*refresh.Result, error) {
	a.mu.Lock()
	err := a.rescheduleLocked()
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}

	logrus.WithField("dashboard", a.dashboard).Info("Atualização manual solicitada")

	result, err := a.reloader.InvalidateAndReload(ctx)
	a.record(err)
	return result, err
}

// Status retorna o estado corrente do auto-refresh
func (a *AutoRefresher) Status() AutoRefreshStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := AutoRefreshStatus{
		Dashboard:       a.dashboard,
		Enabled:         a.enabled,
		IntervalSeconds: int(a.interval.Seconds()),
		LastError:       a.lastError,
	}

	if a.job != nil && a.scheduler.IsRunning() {
		if next := a.job.NextRun(); !next.IsZero() {
			status.NextRunAt = &next
		}
	}
	if !a.lastRunAt.IsZero() {
		lastRunAt := a.lastRunAt
		status.LastRunAt = &lastRunAt
	}

	return status
}

// rescheduleLocked remove o job atual e, se habilitado, agenda outro com a
// primeira execução um intervalo à frente.
func (a *AutoRefresher) rescheduleLocked() error {
	if a.job != nil {
		a.scheduler.RemoveByReference(a.job)
		a.job = nil
	}

	if !a.enabled {
		return nil
	}

	job, err := a.scheduler.Every(a.interval).
		Tag(a.dashboard).
		WaitForSchedule().
		SingletonMode().
		Do(a.tick)
	if err != nil {
		return errors.Wrapf(err, "erro ao agendar auto-refresh de %s", a.dashboard)
	}

	a.job = job
	return nil
}

func (a *AutoRefresher) tick() {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()

	startTime := time.Now()
	_, err := a.reloader.InvalidateAndReload(ctx)
	a.record(err)

	entry := logrus.WithFields(logrus.Fields{
		"dashboard":   a.dashboard,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	switch {
	case err == nil:
		entry.Debug("Auto-refresh concluído")
	case errors.Is(err, refresh.ErrReloadQueued):
		entry.Debug("Auto-refresh enfileirado atrás do ciclo em andamento")
	default:
		entry.WithError(err).Error("Erro no auto-refresh")
	}
}

func (a *AutoRefresher) record(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastRunAt = time.Now()
	a.lastError = ""
	if err != nil && !errors.Is(err, refresh.ErrReloadQueued) {
		a.lastError = err.Error()
	}
}
