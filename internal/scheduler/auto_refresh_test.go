package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/scheduler/mocks"
)

func TestNewAutoRefresher_IntervalBounds(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		wantErr  bool
	}{
		{name: "Mínimo aceito", interval: 30 * time.Second},
		{name: "Máximo aceito", interval: 10 * time.Minute},
		{name: "Abaixo do mínimo", interval: 10 * time.Second, wantErr: true},
		{name: "Acima do máximo", interval: time.Hour, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAutoRefresher("rh", nil, tt.interval, true)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInterval))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAutoRefresher_StartSchedulesOnlyWhenEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enabled, err := NewAutoRefresher("importacoes", reloader, time.Minute, true)
	require.NoError(t, err)
	require.NoError(t, enabled.Start(ctx))
	defer enabled.Stop()

	assert.Equal(t, 1, enabled.scheduler.Len())
	status := enabled.Status()
	assert.True(t, status.Enabled)
	assert.Equal(t, 60, status.IntervalSeconds)
	require.NotNil(t, status.NextRunAt)
	assert.True(t, status.NextRunAt.After(time.Now()), "primeira execução fica um intervalo à frente")

	disabled, err := NewAutoRefresher("rh", reloader, time.Minute, false)
	require.NoError(t, err)
	require.NoError(t, disabled.Start(ctx))
	defer disabled.Stop()

	assert.Equal(t, 0, disabled.scheduler.Len())
	assert.Nil(t, disabled.Status().NextRunAt)
}

func TestAutoRefresher_SetEnabledTogglesJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)

	refresher, err := NewAutoRefresher("faturamento", reloader, 10*time.Minute, true)
	require.NoError(t, err)
	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	require.NoError(t, refresher.SetEnabled(false))
	assert.Equal(t, 0, refresher.scheduler.Len())
	assert.False(t, refresher.Status().Enabled)

	require.NoError(t, refresher.SetEnabled(true))
	assert.Equal(t, 1, refresher.scheduler.Len())
}

func TestAutoRefresher_SetInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)

	refresher, err := NewAutoRefresher("materiais", reloader, 5*time.Minute, true)
	require.NoError(t, err)
	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	require.NoError(t, refresher.SetInterval(30*time.Second))
	status := refresher.Status()
	assert.Equal(t, 30, status.IntervalSeconds)
	require.NotNil(t, status.NextRunAt)
	assert.True(t, status.NextRunAt.Before(time.Now().Add(time.Minute)))
	assert.Equal(t, 1, refresher.scheduler.Len())

	err = refresher.SetInterval(time.Second)
	assert.True(t, errors.Is(err, ErrInvalidInterval))
	assert.Equal(t, 30, refresher.Status().IntervalSeconds)
}

func TestAutoRefresher_RefreshNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	reloader := mocks.NewMockReloader(ctrl)

	expected := &refresh.Result{Dashboard: "operacional", Status: refresh.StatusSuccess}
	reloader.EXPECT().InvalidateAndReload(gomock.Any()).Return(expected, nil).Times(1)

	refresher, err := NewAutoRefresher("operacional", reloader, 5*time.Minute, true)
	require.NoError(t, err)
	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	result, err := refresher.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Same(t, expected, result)

	status := refresher.Status()
	require.NotNil(t, status.LastRunAt)
	assert.Empty(t, status.LastError)
	require.NotNil(t, status.NextRunAt)
	assert.True(t, status.NextRunAt.After(time.Now().Add(4*time.Minute)), "contagem reiniciada")
}

func TestAutoRefresher_Tick(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		lastError string
	}{
		{name: "Recarga com sucesso", err: nil},
		{name: "Recarga enfileirada não é erro", err: refresh.ErrReloadQueued},
		{name: "Erro registrado no status", err: errors.New("portal fora do ar"), lastError: "portal fora do ar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reloader := mocks.NewMockReloader(ctrl)
			reloader.EXPECT().InvalidateAndReload(gomock.Any()).Return(nil, tt.err).Times(1)

			refresher, err := NewAutoRefresher("rh", reloader, time.Minute, true)
			require.NoError(t, err)

			refresher.tick()

			status := refresher.Status()
			assert.Equal(t, tt.lastError, status.LastError)
			assert.NotNil(t, status.LastRunAt)
		})
	}
}

func TestRescheduleLocked_WrapsSchedulerError(t *testing.T) {
	refresher := &AutoRefresher{
		scheduler: gocron.NewScheduler(time.UTC),
		dashboard: "rh",
		enabled:   true,
	}

	err := refresher.rescheduleLocked()
	require.Error(t, err)
	assert.True(t, errors.Is(err, gocron.ErrInvalidInterval))
	assert.Contains(t, err.Error(), "erro ao agendar auto-refresh de rh")
	assert.Nil(t, refresher.job)
}
