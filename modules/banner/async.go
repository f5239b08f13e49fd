package banner

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"courseflow-server/modules/common/config"
	redisClient "courseflow-server/modules/common/redis"
)

// AsyncHandler - enqueue + status endpoints for queued banner generation.
type AsyncHandler struct {
	rdb *redis.Client
}

func NewAsyncHandler() *AsyncHandler {
	cfg := config.GetConfig()

	rdb := redisClient.Connect(cfg)
	if rdb == nil {
		log.Println("⚠️ [Banner] Async handler running without Redis - enqueue disabled")
	}

	return &AsyncHandler{rdb: rdb}
}

// HandleEnqueue - POST /api/generate-banner/async
func (h *AsyncHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
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

	if h.rdb == nil {
		writeJSON(w, http.StatusServiceUnavailable, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Async generation is unavailable",
		})
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Banner] Invalid async request: %v", err)
		writeJSON(w, http.StatusBadRequest, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if strings.TrimSpace(req.CourseDetails.Title) == "" {
		writeJSON(w, http.StatusBadRequest, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Course title is required",
		})
		return
	}

	jobID, position, err := EnqueueJob(r.Context(), h.rdb, &req)
	if err != nil {
		log.Printf("❌ [Banner] Enqueue failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Failed to enqueue job",
		})
		return
	}

	json.NewEncoder(w).Encode(EnqueueResponse{
		Success:       true,
		JobID:         jobID,
		Queue:         queueKey,
		QueuePosition: position,
	})
}

// HandleJobStatus - GET /api/banner-jobs/{jobId}
func (h *AsyncHandler) HandleJobStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.rdb == nil {
		writeJSON(w, http.StatusServiceUnavailable, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Async generation is unavailable",
		})
		return
	}

	jobID := mux.Vars(r)["jobId"]

	status, err := GetJobStatus(r.Context(), h.rdb, jobID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, EnqueueResponse{
			Success:      false,
			ErrorMessage: "Job not found",
		})
		return
	}

	json.NewEncoder(w).Encode(status)
}

// StatusClient - shared Redis client for the websocket progress stream.
func (h *AsyncHandler) StatusClient() *redis.Client {
	return h.rdb
}
