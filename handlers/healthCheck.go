package handlers

import "net/http"

// HealthCheckHandler lida com a verificação de saúde do sistema
func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "online"})
	}
}
