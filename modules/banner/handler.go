package banner

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"courseflow-server/modules/common/config"
)

// generator - implemented by *Service; swapped for a stub in tests.
type generator interface {
	GenerateBannerSet(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

type Handler struct {
	service generator
}

func NewHandler() *Handler {
	h := &Handler{}
	if svc := NewService(); svc != nil {
		h.service = svc
	}
	return h
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// HandleGenerate - POST /api/generate-banner
// Generates the banner + background pair synchronously.
// 400 malformed input, 500 missing credential, 502 provider failure.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := config.GetConfig()
	if cfg.GeminiAPIKey == "" || h.service == nil {
		log.Println("❌ [Banner] Generation requested without GEMINI_API_KEY")
		writeJSON(w, http.StatusInternalServerError, GenerateResponse{
			Success:      false,
			ErrorMessage: "Image generation credential is not configured",
		})
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Banner] Invalid request: %v", err)
		writeJSON(w, http.StatusBadRequest, GenerateResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if strings.TrimSpace(req.CourseDetails.Title) == "" {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{
			Success:      false,
			ErrorMessage: "Course title is required",
		})
		return
	}

	log.Printf("🎨 [Banner] Processing request: title=%s, logos=%d",
		truncateString(req.CourseDetails.Title, 30), len(req.LogoImages))

	response, err := h.service.GenerateBannerSet(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [Banner] Generation failed: %v", err)
		writeJSON(w, http.StatusBadGateway, GenerateResponse{
			Success:      false,
			ErrorMessage: "Failed to generate images: " + err.Error(),
		})
		return
	}

	log.Printf("✅ [Banner] Response sent: success=%v", response.Success)
	json.NewEncoder(w).Encode(response)
}
