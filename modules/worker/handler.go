package worker

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	redisutil "atelier-studio-server/modules/common/redis"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same open policy as the HTTP CORS headers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	rdb *redis.Client
}

func NewHandler(rdb *redis.Client) *Handler {
	return &Handler{rdb: rdb}
}

// RegisterRoutes - async job status, cancel, and progress stream routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/jobs/{id}", h.HandleJobStatus).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/jobs/{id}/cancel", h.HandleCancel).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws/jobs/{id}", h.HandleJobStream)
	log.Println("✅ Job queue routes registered")
}

// HandleJobStatus - GET /api/jobs/{id}
func (h *Handler) HandleJobStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.rdb == nil {
		writeError(w, http.StatusServiceUnavailable, "Job queue is not configured")
		return
	}

	jobID := mux.Vars(r)["id"]
	status, err := redisutil.GetJobStatus(r.Context(), h.rdb, jobID)
	if err != nil {
		log.Printf("❌ [Jobs] Status read failed for %s: %v", jobID, err)
		writeError(w, http.StatusInternalServerError, "Failed to read job status")
		return
	}
	if len(status) == 0 {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobId":  jobID,
		"status": status,
	})
}

// HandleCancel - POST /api/jobs/{id}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.rdb == nil {
		writeError(w, http.StatusServiceUnavailable, "Job queue is not configured")
		return
	}

	jobID := mux.Vars(r)["id"]
	status, err := redisutil.GetJobStatus(r.Context(), h.rdb, jobID)
	if err != nil || len(status) == 0 {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	if IsTerminal(status["status"]) {
		writeError(w, http.StatusConflict, "Job already finished")
		return
	}

	if err := redisutil.SetJobCancelled(h.rdb, jobID); err != nil {
		log.Printf("❌ [Jobs] Cancel failed for %s: %v", jobID, err)
		writeError(w, http.StatusInternalServerError, "Failed to cancel job")
		return
	}

	log.Printf("🛑 [Jobs] Cancel requested for %s", jobID)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobId":     jobID,
		"cancelled": true,
	})
}

// HandleJobStream - GET /ws/jobs/{id}
// Pushes the job status hash over a websocket until the job reaches a
// terminal state or the client disconnects.
func (h *Handler) HandleJobStream(w http.ResponseWriter, r *http.Request) {
	if h.rdb == nil {
		http.Error(w, "Job queue is not configured", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Jobs] Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	jobID := mux.Vars(r)["id"]
	log.Printf("🔌 [Jobs] Progress stream opened for %s", jobID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastPayload string
	for {
		status, err := redisutil.GetJobStatus(r.Context(), h.rdb, jobID)
		if err != nil {
			conn.WriteJSON(map[string]string{"error": "failed to read job status"})
			return
		}
		if len(status) == 0 {
			conn.WriteJSON(map[string]string{"error": "job not found"})
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"jobId":  jobID,
			"status": status,
		})
		if err != nil {
			return
		}
		// Only push when something changed.
		if string(payload) != lastPayload {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
			lastPayload = string(payload)
		}

		if IsTerminal(status["status"]) {
			log.Printf("🔌 [Jobs] Progress stream closed for %s (%s)", jobID, status["status"])
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
