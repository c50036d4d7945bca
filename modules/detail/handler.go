package detail

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atelier-studio-server/modules/common/fal"
	"atelier-studio-server/modules/studio"
)

type Handler struct {
	service *Service
}

func NewHandler() *Handler {
	return &Handler{service: NewService()}
}

// RegisterRoutes - technical spec sheet routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/detail", h.HandleDetail).Methods("POST", "OPTIONS")
	log.Println("✅ Detail routes registered")
}

// HandleDetail - POST /api/detail
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req DetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Detail] Invalid request: %v", err)
		writeError(w, http.StatusBadRequest, studio.ErrCodeInvalidRequest, "Invalid request format")
		return
	}

	if req.Preview {
		previews, err := h.service.Preview(&req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		json.NewEncoder(w).Encode(DetailResponse{Success: true, Previews: previews})
		return
	}

	resp, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := studio.ErrCodeInternalError

	var valErr *studio.ValidationError
	var provErr *fal.ProviderError
	switch {
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
		code = valErr.Code
		if code == "" {
			code = studio.ErrCodeInvalidRequest
		}
	case errors.Is(err, fal.ErrMissingKey):
		code = studio.ErrCodeConfiguration
	case errors.As(err, &provErr):
		status = http.StatusBadGateway
		code = studio.ErrCodeProviderError
		if provErr.StatusCode >= 400 && provErr.StatusCode < 500 {
			status = provErr.StatusCode
		}
	}

	writeError(w, status, code, err.Error())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":     message,
		"errorCode": code,
	})
}
