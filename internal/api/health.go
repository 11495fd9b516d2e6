package api

import (
	"net/http"

	"github.com/phrazzld/worktracker/internal/api/shared"
)

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
