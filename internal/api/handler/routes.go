package handler

import (
	"net/http"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/api/handler/router"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/usecases/dashboarding"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dashboards(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboards",
			Method:      http.MethodGet,
			Handler:     ListDashboards(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name/filters",
			Method:      http.MethodPut,
			Handler:     ApplyFilters(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name/filters/reset",
			Method:      http.MethodPost,
			Handler:     ResetFilters(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name/auto-refresh",
			Method:      http.MethodGet,
			Handler:     GetAutoRefresh(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboards/:name/auto-refresh",
			Method:      http.MethodPut,
			Handler:     UpdateAutoRefresh(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
