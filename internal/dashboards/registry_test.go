package dashboards

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh/mocks"
)

var referenceDate = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func newDeps(t *testing.T) Deps {
	ctrl := gomock.NewController(t)
	return Deps{
		Source:   mocks.NewMockSource(ctrl),
		Renderer: mocks.NewMockRenderer(ctrl),
		CacheTTL: 5 * time.Minute,
		Now:      func() time.Time { return referenceDate },
	}
}

func TestNewRegistry_DefaultQueries(t *testing.T) {
	registry, err := NewRegistry(Catalog(), newDeps(t))
	require.NoError(t, err)

	tests := []struct {
		dashboard string
		query     string
		interval  time.Duration
	}{
		{dashboard: Operacional, query: "end_date=2025-03-10&start_date=2025-02-08", interval: 5 * time.Minute},
		{dashboard: Faturamento, query: "year=2025", interval: 10 * time.Minute},
		{dashboard: FluxoDeCaixa, query: "page=1&per_page=50&year=2025", interval: 10 * time.Minute},
		{dashboard: Materiais, query: "end_date=2025-03-10&start_date=2025-02-08", interval: 5 * time.Minute},
		{dashboard: RH, query: "month=3&year=2025", interval: 10 * time.Minute},
		{dashboard: Importacoes, query: "end_date=2025-03-10&start_date=2025-02-08", interval: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.dashboard, func(t *testing.T) {
			dashboard, err := registry.Get(tt.dashboard)
			require.NoError(t, err)
			assert.Equal(t, tt.query, dashboard.Orchestrator.Query())
			assert.Equal(t, tt.interval, dashboard.Interval)
			assert.True(t, dashboard.Orchestrator.SubFetches()[0].Primary)
		})
	}

	assert.Len(t, registry.All(), len(tests))
	assert.Equal(t, Operacional, registry.All()[0].Name)
}

func TestRegistry_GetUnknown(t *testing.T) {
	registry, err := NewRegistry(Catalog(), newDeps(t))
	require.NoError(t, err)

	_, err = registry.Get("vendas")
	assert.True(t, errors.Is(err, ErrUnknownDashboard))
}

func TestNewRegistry_IntervalOverrides(t *testing.T) {
	deps := newDeps(t)
	deps.Intervals = map[string]time.Duration{Importacoes: time.Minute}

	registry, err := NewRegistry(Catalog(), deps)
	require.NoError(t, err)

	dashboard, err := registry.Get(Importacoes)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, dashboard.Interval)

	deps.Intervals = map[string]time.Duration{"vendas": time.Minute}
	_, err = NewRegistry(Catalog(), deps)
	assert.True(t, errors.Is(err, ErrUnknownDashboard))
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	defs := append(Catalog(), Catalog()[0])
	_, err := NewRegistry(defs, newDeps(t))
	assert.Error(t, err)
}
