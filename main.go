package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"courseflow-server/modules/banner"
	"courseflow-server/modules/common/config"
	"courseflow-server/modules/landing"
	"courseflow-server/modules/logos"
	"courseflow-server/modules/postprocess"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "courseflow-server",
	})
}

// jobProgressHandler - GET /ws/banner-jobs?job=<id>
// Streams the async job status over a websocket every 2 seconds until the job
// reaches a terminal state or the client disconnects.
func jobProgressHandler(asyncHandler *banner.AsyncHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := r.URL.Query().Get("job")
		if jobID == "" {
			http.Error(w, "Missing job parameter", http.StatusBadRequest)
			return
		}

		rdb := asyncHandler.StatusClient()
		if rdb == nil {
			http.Error(w, "Async generation is unavailable", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		log.Printf("🔌 Job progress stream opened: %s", jobID)

		// Reader goroutine only detects client disconnects.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			status, err := banner.GetJobStatus(ctx, rdb, jobID)
			if err != nil {
				conn.WriteJSON(map[string]string{"error": "Job not found"})
				return
			}

			if err := conn.WriteJSON(status); err != nil {
				log.Printf("⚠️ Job progress write failed for %s: %v", jobID, err)
				return
			}

			if status.Status == banner.StatusCompleted || status.Status == banner.StatusFailed {
				log.Printf("🔌 Job progress stream closed: %s (%s)", jobID, status.Status)
				return
			}

			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Redis Queue Worker (백그라운드)
	if cfg.HasRedis() {
		go banner.StartWorker()
	}

	bannerHandler := banner.NewHandler()
	asyncHandler := banner.NewAsyncHandler()
	landingHandler := landing.NewHandler(landing.NewService())

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	r.HandleFunc("/api/generate-banner", bannerHandler.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/generate-banner/async", asyncHandler.HandleEnqueue).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/banner-jobs/{jobId}", asyncHandler.HandleJobStatus).Methods("GET")
	r.HandleFunc("/ws/banner-jobs", jobProgressHandler(asyncHandler))

	r.HandleFunc("/api/compose-banner", postprocess.HandleCompose).Methods("POST", "OPTIONS")

	r.HandleFunc("/api/landing", landingHandler.HandleCreate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/landing/{id}", landingHandler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/register", landingHandler.HandleRegister).Methods("POST", "OPTIONS")

	r.HandleFunc("/api/logos", logos.HandleList).Methods("GET", "OPTIONS")

	log.Printf("🚀 CourseFlow Server starting on port %s", cfg.Port)
	log.Printf("🎨 Banner generation: http://localhost:%s/api/generate-banner", cfg.Port)
	log.Printf("📡 Job progress stream: ws://localhost:%s/ws/banner-jobs", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
