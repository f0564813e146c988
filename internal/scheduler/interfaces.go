package scheduler

import (
	"context"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Reloader é a parte do controlador de carga usada pelo auto-refresh
type Reloader interface {
	InvalidateAndReload(ctx context.Context) (*refresh.Result, error)
}
