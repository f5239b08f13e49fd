package landing

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func setCORS(w http.ResponseWriter, methods string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleCreate - POST /api/landing
// Publishing always succeeds: store failures are logged, not surfaced.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST, OPTIONS")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Landing] Invalid create request: %v", err)
		writeJSON(w, http.StatusBadRequest, CreateResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	json.NewEncoder(w).Encode(h.service.Create(r.Context(), &req))
}

// HandleGet - GET /api/landing/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "GET, OPTIONS")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := mux.Vars(r)["id"]

	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, GetResponse{
				Success:      false,
				ErrorMessage: "Landing not found",
			})
			return
		}
		log.Printf("❌ [Landing] Failed to load %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, GetResponse{
			Success:      false,
			ErrorMessage: "Failed to load landing",
		})
		return
	}

	json.NewEncoder(w).Encode(GetResponse{Success: true, Landing: rec})
}

// HandleRegister - POST /api/register
// Remote-only: fails with 500 when the spreadsheet backend is unreachable or
// not configured. The backend's response body is passed through on success.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST, OPTIONS")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Landing] Invalid register request: %v", err)
		writeJSON(w, http.StatusBadRequest, RegisterResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	raw, err := h.service.Register(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [Landing] Registration failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, RegisterResponse{
			Success:      false,
			ErrorMessage: "Registration failed: " + err.Error(),
		})
		return
	}

	w.Write(raw)
}
