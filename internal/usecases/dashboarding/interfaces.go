package dashboarding

import (
	"context"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/scheduler"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Dashboarder é a fachada usada pelos handlers HTTP
type Dashboarder interface {
	List() []Summary
	Get(ctx context.Context, name string, load bool) (*Detail, error)
	Refresh(ctx context.Context, name string) (*refresh.Result, error)
	ApplyFilters(ctx context.Context, name string, changes filter.Values) (*refresh.Result, error)
	ResetFilters(ctx context.Context, name string) (*refresh.Result, error)
	AutoRefresh(name string) (scheduler.AutoRefreshStatus, error)
	UpdateAutoRefresh(ctx context.Context, name string, update AutoRefreshUpdate) (scheduler.AutoRefreshStatus, error)
}

var _ Dashboarder = (*Service)(nil)
