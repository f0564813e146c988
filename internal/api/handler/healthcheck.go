package handler

import (
	"net/http"
	"time"
)

type healthcheckResponse struct {
	Status string    `json:"status"`
	Now    time.Time `json:"now"`
}

// HealthcheckHandler responde sem tocar no portal nem no armazenamento de preferências
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, healthcheckResponse{Status: "ok", Now: time.Now().UTC()})
	})
}
