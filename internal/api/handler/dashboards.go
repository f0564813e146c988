package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/usecases/dashboarding"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/apiErrors"
)

func dashboardName(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("name")
}

func ListDashboards(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.List())
	})
}

// GetDashboard devolve o snapshot; ?load=true dispara a carga antes
func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		load := false
		if raw := r.URL.Query().Get("load"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro load deve ser booleano", nil)
				return
			}
			load = parsed
		}

		detail, err := service.Get(r.Context(), dashboardName(r), load)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, detail)
	})
}

func RefreshDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := service.Refresh(r.Context(), dashboardName(r))
		writeResult(w, r, result, err)
	})
}

// ApplyFilters recebe um objeto JSON plano; null ou string vazia removem a chave
func ApplyFilters(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var changes filter.Values
		if err := decodeBody(w, r, &changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo deve ser um objeto JSON", nil)
			return
		}
		if len(changes) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum filtro informado", nil)
			return
		}

		result, err := service.ApplyFilters(r.Context(), dashboardName(r), changes)
		writeResult(w, r, result, err)
	})
}

func ResetFilters(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := service.ResetFilters(r.Context(), dashboardName(r))
		writeResult(w, r, result, err)
	})
}

func GetAutoRefresh(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, err := service.AutoRefresh(dashboardName(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, status)
	})
}

func UpdateAutoRefresh(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update dashboarding.AutoRefreshUpdate
		if err := decodeBody(w, r, &update); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo inválido", nil)
			return
		}
		if update.Enabled == nil && update.IntervalSeconds == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe enabled ou interval_seconds", nil)
			return
		}

		status, err := service.UpdateAutoRefresh(r.Context(), dashboardName(r), update)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, status)
	})
}
