package postprocess

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"courseflow-server/modules/common/utils"
)

// ComposeRequest - a clean background plus the text to overlay locally,
// without another model round trip.
type ComposeRequest struct {
	Background string `json:"background"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Info       string `json:"info,omitempty"`
	CTA        string `json:"cta,omitempty"`
}

type ComposeResponse struct {
	Success      bool       `json:"success"`
	Banner       string     `json:"banner,omitempty"`
	Colors       *ColorPair `json:"colors,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Stubbed in tests to exercise the rendering failure path.
var composeText = ComposeText

// HandleCompose - POST /api/compose-banner
// Composites text pills onto an already generated background.
func HandleCompose(w http.ResponseWriter, r *http.Request) {
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

	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Compose] Invalid request: %v", err)
		writeJSON(w, http.StatusBadRequest, ComposeResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Background) == "" {
		writeJSON(w, http.StatusBadRequest, ComposeResponse{
			Success:      false,
			ErrorMessage: "Title and background are required",
		})
		return
	}

	background, _, err := utils.DecodeDataURL(req.Background)
	if err != nil {
		log.Printf("❌ [Compose] Invalid background: %v", err)
		writeJSON(w, http.StatusBadRequest, ComposeResponse{
			Success:      false,
			ErrorMessage: "Invalid background image",
		})
		return
	}

	composed, err := composeText(background, Overlay{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Info:     req.Info,
		CTA:      req.CTA,
	})
	if err != nil {
		// The background already decoded, so this is a rendering failure on
		// our side, not bad input.
		log.Printf("❌ [Compose] Compositing failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ComposeResponse{
			Success:      false,
			ErrorMessage: "Failed to compose banner: " + err.Error(),
		})
		return
	}

	colors := ExtractColorsWithDefaults(background, ComposePrimary, DefaultAccent)

	log.Printf("✅ [Compose] Banner composed (%d bytes)", len(composed))
	json.NewEncoder(w).Encode(ComposeResponse{
		Success: true,
		Banner:  utils.EncodeDataURL("image/png", composed),
		Colors:  &colors,
	})
}
