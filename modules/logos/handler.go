package logos

import (
	"encoding/json"
	"net/http"

	"courseflow-server/modules/course"
)

type listResponse struct {
	Success bool          `json:"success"`
	Logos   []course.Logo `json:"logos"`
}

// HandleList - GET /api/logos
func HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	json.NewEncoder(w).Encode(listResponse{
		Success: true,
		Logos:   Catalog(),
	})
}
