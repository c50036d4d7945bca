package analyze

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler() *Handler {
	return &Handler{service: NewService()}
}

// RegisterRoutes - fabric/fit/pose analysis routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/analyze", h.HandleAnalyze).Methods("POST", "OPTIONS")
	log.Println("✅ Analyze routes registered")
}

// HandleAnalyze - POST /api/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.service == nil {
		writeError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "Image is required")
		return
	}

	resp, err := h.service.Analyze(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [Analyze] %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AnalyzeResponse{Status: "error", Error: message})
}
