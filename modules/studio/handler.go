package studio

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atelier-studio-server/modules/common/fal"
)

// Enqueuer pushes a generate request onto the async job queue. Wired in by
// the worker module at startup; nil means async mode is unavailable.
type Enqueuer interface {
	Enqueue(req *GenerateRequest) (string, error)
}

type Handler struct {
	service  *Service
	enqueuer Enqueuer
}

func NewHandler(enqueuer Enqueuer) *Handler {
	return &Handler{
		service:  NewService(),
		enqueuer: enqueuer,
	}
}

// RegisterRoutes - studio generation routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/generate", h.HandleGenerate).Methods("POST", "OPTIONS")
	log.Println("✅ Studio routes registered")
}

// HandleGenerate - POST /api/generate
// Styling shot, technical 3-view batch, preview, or async enqueue depending
// on the request flags.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Studio] Invalid request: %v", err)
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request format")
		return
	}

	// Preview compiles everything but never calls the provider.
	if req.Preview {
		previews, err := h.service.Previews(&req)
		if err != nil {
			writePipelineError(w, err)
			return
		}
		json.NewEncoder(w).Encode(GenerateResponse{Status: "preview", Previews: previews})
		return
	}

	// Async mode enqueues and answers immediately with a job ID.
	if req.Async {
		if h.enqueuer == nil {
			writeError(w, http.StatusServiceUnavailable, ErrCodeConfiguration, "Async generation is not available: job queue is not configured")
			return
		}
		jobID, err := h.enqueuer.Enqueue(&req)
		if err != nil {
			writePipelineError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "queued",
			"jobId":  jobID,
		})
		return
	}

	resp, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

// writePipelineError maps a pipeline error to an HTTP status and JSON body.
func writePipelineError(w http.ResponseWriter, err error) {
	code := errorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case ErrCodeInvalidRequest, ErrCodeNoAssets:
		status = http.StatusBadRequest
	case ErrCodeProviderError:
		status = http.StatusBadGateway
		var provErr *fal.ProviderError
		if errors.As(err, &provErr) && provErr.StatusCode >= 400 && provErr.StatusCode < 500 {
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
