package dashboarding

import (
	"context"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences"
	prefmocks "github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences/mocks"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/dashboards"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	refreshmocks "github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh/mocks"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/scheduler"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/view"
)

var referenceDate = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	source *refreshmocks.MockSource
	prefs  *prefmocks.MockStore
	views  *view.Store
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		source: refreshmocks.NewMockSource(ctrl),
		prefs:  prefmocks.NewMockStore(ctrl),
		views:  view.NewStore(),
	}

	defs := []dashboards.Definition{}
	for _, def := range dashboards.Catalog() {
		if def.Name == dashboards.RH || def.Name == dashboards.Faturamento {
			defs = append(defs, def)
		}
	}

	registry, err := dashboards.NewRegistry(defs, dashboards.Deps{
		Source:   f.source,
		Renderer: f.views,
		CacheTTL: 5 * time.Minute,
		Now:      func() time.Time { return referenceDate },
	})
	require.NoError(t, err)

	f.svc = NewService(registry, f.views, f.prefs)
	t.Cleanup(f.svc.Stop)
	return f
}

func (f *fixture) start(t *testing.T, saved map[string]*preferences.Preferences) {
	t.Helper()
	for _, name := range []string{dashboards.Faturamento, dashboards.RH} {
		if prefs, ok := saved[name]; ok {
			f.prefs.EXPECT().Load(gomock.Any(), name).Return(prefs, nil)
			continue
		}
		f.prefs.EXPECT().Load(gomock.Any(), name).Return(nil, preferences.ErrNotFound)
	}
	require.NoError(t, f.svc.Start(context.Background(), true))
}

func (f *fixture) answerAll() {
	f.source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(jsoniter.RawMessage(`{"ok":true}`), nil).AnyTimes()
}

func statusOf(t *testing.T, svc *Service, name string) scheduler.AutoRefreshStatus {
	status, err := svc.AutoRefresh(name)
	require.NoError(t, err)
	return status
}

func TestService_StartRestoresPreferences(t *testing.T) {
	f := newFixture(t)
	f.start(t, map[string]*preferences.Preferences{
		dashboards.RH: {
			AutoRefreshEnabled:  false,
			LoopIntervalSeconds: 120,
			SelectedCompanies:   []string{"ACME"},
			Filters:             filter.Values{"year": float64(2024)},
		},
	})

	var rh, faturamento Summary
	for _, summary := range f.svc.List() {
		switch summary.Name {
		case dashboards.RH:
			rh = summary
		case dashboards.Faturamento:
			faturamento = summary
		}
	}

	assert.Equal(t, "empresa=ACME&month=3&year=2024", rh.Report.Query)
	assert.False(t, rh.AutoRefresh.Enabled)
	assert.Equal(t, 120, rh.AutoRefresh.IntervalSeconds)

	assert.Equal(t, "year=2025", faturamento.Report.Query)
	assert.True(t, faturamento.AutoRefresh.Enabled)
	assert.Equal(t, 600, faturamento.AutoRefresh.IntervalSeconds)
}

func TestService_StartIgnoresInvalidSavedState(t *testing.T) {
	f := newFixture(t)
	f.start(t, map[string]*preferences.Preferences{
		dashboards.Faturamento: {
			AutoRefreshEnabled:  true,
			LoopIntervalSeconds: 5,
			Filters:             filter.Values{"start_date": "ontem"},
		},
	})

	status := statusOf(t, f.svc, dashboards.Faturamento)
	assert.Equal(t, 600, status.IntervalSeconds, "intervalo fora dos limites mantém o padrão")

	detail, err := f.svc.Get(context.Background(), dashboards.Faturamento, false)
	require.NoError(t, err)
	assert.Equal(t, "year=2025", detail.Report.Query)
	assert.Nil(t, detail.View)
}

func TestService_GetWithLoadRendersView(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)
	f.answerAll()

	detail, err := f.svc.Get(context.Background(), dashboards.RH, true)
	require.NoError(t, err)
	require.NotNil(t, detail.View)
	assert.Equal(t, refresh.StatusSuccess, detail.View.Status)
	assert.Len(t, detail.View.Slices, 3)

	_, err = f.svc.Get(context.Background(), "vendas", true)
	assert.True(t, errors.Is(err, dashboards.ErrUnknownDashboard))
}

func TestService_ApplyFiltersPersists(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)
	f.answerAll()

	var saved *preferences.Preferences
	f.prefs.EXPECT().Save(gomock.Any(), dashboards.Faturamento, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prefs *preferences.Preferences) error {
			saved = prefs
			return nil
		})

	result, err := f.svc.ApplyFilters(context.Background(), dashboards.Faturamento, filter.Values{
		"year":    2024,
		"empresa": []string{"ACME", "UNIQ"},
	})
	require.NoError(t, err)
	assert.Equal(t, "empresa=ACME&empresa=UNIQ&year=2024", result.Query)

	require.NotNil(t, saved)
	assert.Equal(t, []string{"ACME", "UNIQ"}, saved.SelectedCompanies)
	assert.Equal(t, filter.Values{"year": int64(2024)}, saved.Filters)
	assert.True(t, saved.AutoRefreshEnabled)
	assert.Equal(t, 600, saved.LoopIntervalSeconds)
}

func TestService_ApplyFiltersInvalidDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)

	_, err := f.svc.ApplyFilters(context.Background(), dashboards.Faturamento, filter.Values{"year": true})
	assert.True(t, errors.Is(err, filter.ErrInvalidFilterValue))
}

func TestService_ResetFiltersPersists(t *testing.T) {
	f := newFixture(t)
	f.start(t, map[string]*preferences.Preferences{
		dashboards.Faturamento: {AutoRefreshEnabled: true, Filters: filter.Values{"year": float64(2023)}},
	})
	f.answerAll()
	f.prefs.EXPECT().Save(gomock.Any(), dashboards.Faturamento, gomock.Any()).Return(errors.New("disco cheio"))

	result, err := f.svc.ResetFilters(context.Background(), dashboards.Faturamento)
	require.NoError(t, err, "falha ao salvar preferências não falha a operação")
	assert.Equal(t, "year=2025", result.Query)
}

func TestService_UpdateAutoRefresh(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)

	invalid := 5
	_, err := f.svc.UpdateAutoRefresh(context.Background(), dashboards.RH, AutoRefreshUpdate{IntervalSeconds: &invalid})
	assert.True(t, errors.Is(err, scheduler.ErrInvalidInterval))

	f.prefs.EXPECT().Save(gomock.Any(), dashboards.RH, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prefs *preferences.Preferences) error {
			assert.False(t, prefs.AutoRefreshEnabled)
			assert.Equal(t, 60, prefs.LoopIntervalSeconds)
			return nil
		})

	enabled := false
	interval := 60
	status, err := f.svc.UpdateAutoRefresh(context.Background(), dashboards.RH, AutoRefreshUpdate{
		Enabled:         &enabled,
		IntervalSeconds: &interval,
	})
	require.NoError(t, err)
	assert.False(t, status.Enabled)
	assert.Equal(t, 60, status.IntervalSeconds)
}

func TestService_Refresh(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)
	f.answerAll()

	result, err := f.svc.Refresh(context.Background(), dashboards.RH)
	require.NoError(t, err)
	assert.Equal(t, refresh.OriginNetwork, result.Origin)
	assert.NotNil(t, statusOf(t, f.svc, dashboards.RH).LastRunAt)
}

func newFileService(t *testing.T, dir string, source refresh.Source) *Service {
	t.Helper()

	var defs []dashboards.Definition
	for _, def := range dashboards.Catalog() {
		if def.Name == dashboards.RH {
			defs = append(defs, def)
		}
	}

	registry, err := dashboards.NewRegistry(defs, dashboards.Deps{
		Source:   source,
		Renderer: view.NewStore(),
		CacheTTL: 5 * time.Minute,
		Now:      func() time.Time { return referenceDate },
	})
	require.NoError(t, err)

	store, err := preferences.NewFileStore(dir)
	require.NoError(t, err)

	svc := NewService(registry, view.NewStore(), store)
	require.NoError(t, svc.Start(context.Background(), false))
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_FiltersSurviveRestart(t *testing.T) {
	tests := []struct {
		name    string
		changes filter.Values
		query   string
	}{
		{
			name:    "Padrão removido continua removido",
			changes: filter.Values{"month": nil},
			query:   "year=2025",
		},
		{
			name:    "Empresas e ano alterados",
			changes: filter.Values{"year": 2024, "empresa": []string{"ACME"}},
			query:   "empresa=ACME&month=3&year=2024",
		},
		{
			name:    "Mês alterado",
			changes: filter.Values{"month": 1},
			query:   "month=1&year=2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := refreshmocks.NewMockSource(ctrl)
			source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(jsoniter.RawMessage(`{"ok":true}`), nil).AnyTimes()

			dir := t.TempDir()

			first := newFileService(t, dir, source)
			result, err := first.ApplyFilters(context.Background(), dashboards.RH, tt.changes)
			require.NoError(t, err)
			assert.Equal(t, tt.query, result.Query)
			first.Stop()

			restarted := newFileService(t, dir, source)
			detail, err := restarted.Get(context.Background(), dashboards.RH, false)
			require.NoError(t, err)
			assert.Equal(t, tt.query, detail.Report.Query)
		})
	}
}

func TestService_GetWithLoadDuringCycleReturnsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.start(t, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	f.source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (jsoniter.RawMessage, error) {
			once.Do(func() { close(started) })
			<-release
			return jsoniter.RawMessage(`{"ok":true}`), nil
		}).AnyTimes()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Refresh(context.Background(), dashboards.RH)
		done <- err
	}()

	<-started
	detail, err := f.svc.Get(context.Background(), dashboards.RH, true)
	require.NoError(t, err, "carga em andamento não é falha")
	require.NotNil(t, detail)
	assert.Equal(t, refresh.StateLoading, detail.Report.State)
	assert.Nil(t, detail.View, "nada renderizado ainda")

	close(release)
	require.NoError(t, <-done)

	detail, err = f.svc.Get(context.Background(), dashboards.RH, false)
	require.NoError(t, err)
	require.NotNil(t, detail.View)
	assert.Equal(t, refresh.StatusSuccess, detail.View.Status)
}
