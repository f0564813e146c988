package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/dashboards"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/scheduler"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/apiErrors"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite do corpo aceito nas rotas de escrita
const maxBodySize = 64 << 10

// QueuedResponse é devolvido quando a recarga fica para depois do ciclo atual
type QueuedResponse struct {
	Queued  bool   `json:"queued"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeResult traduz o desfecho de um ciclo de carga em resposta HTTP
func writeResult(w http.ResponseWriter, r *http.Request, result *refresh.Result, err error) {
	if errors.Is(err, refresh.ErrReloadQueued) {
		writeJSON(w, r, http.StatusAccepted, QueuedResponse{
			Queued:  true,
			Message: "Recarga enfileirada, será executada após o ciclo em andamento",
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if result.Status == refresh.StatusFailure {
		apiErrors.WriteError(w, apiErrors.ErrExternalService, result.Summary, result.Errors)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// writeError escolhe o código de erro da API a partir do erro de domínio
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var filterErr *filter.InvalidFilterValueError

	switch {
	case errors.Is(err, dashboards.ErrUnknownDashboard):
		apiErrors.WriteError(w, apiErrors.ErrUnknownDashboard, "Dashboard não encontrado", nil)
	case errors.As(err, &filterErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFilter, "Valor de filtro inválido", map[string]string{
			"key":    filterErr.Key,
			"reason": filterErr.Reason,
		})
	case errors.Is(err, refresh.ErrCycleInFlight):
		apiErrors.WriteError(w, apiErrors.ErrLoadInProgress, "Carga em andamento, tente novamente em instantes", nil)
	case errors.Is(err, scheduler.ErrInvalidInterval):
		apiErrors.WriteError(w, apiErrors.ErrInvalidInterval, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst)
}
