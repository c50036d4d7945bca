package ghost

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atelier-studio-server/modules/common/fal"
	"atelier-studio-server/modules/common/storage"
)

// GhostRequest is the inbound JSON body for /api/ghost. Image order carries
// meaning: main garment, logo lock, fabric lock.
type GhostRequest struct {
	Images     []string `json:"images"`
	Angle      string   `json:"angle,omitempty"` // front | back
	Resolution string   `json:"resolution,omitempty"`
}

type GhostResponse struct {
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Handler struct {
	fal     *fal.Client
	storage *storage.Client
}

func NewHandler() *Handler {
	return &Handler{
		fal:     fal.NewClient(),
		storage: storage.NewClient(),
	}
}

// RegisterRoutes - ghost mannequin routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/ghost", h.HandleGhost).Methods("POST", "OPTIONS")
	log.Println("✅ Ghost mannequin routes registered")
}

// HandleGhost - POST /api/ghost
func (h *Handler) HandleGhost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req GhostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		if img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		writeError(w, http.StatusBadRequest, "At least one image required")
		return
	}

	resolution := req.Resolution
	if resolution == "" {
		resolution = "1K"
	}

	log.Printf("👻 [Ghost] Generating %s mannequin with %d reference(s)", angleOrDefault(req.Angle), len(images))

	resp, err := h.fal.Invoke(r.Context(), &fal.Request{
		Prompt:      PromptForAngle(req.Angle),
		ImageURLs:   images,
		AspectRatio: "2:3",
		Resolution:  resolution,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var provErr *fal.ProviderError
		if errors.As(err, &provErr) {
			status = http.StatusBadGateway
		}
		log.Printf("❌ [Ghost] Generation failed: %v", err)
		writeError(w, status, fmt.Sprintf("Image generation failed: %v", err))
		return
	}
	if len(resp.Images) == 0 {
		writeError(w, http.StatusBadGateway, "No image in response")
		return
	}

	imageURL := h.storage.PersistURL(r.Context(), resp.Images[0].URL, "ghost")
	json.NewEncoder(w).Encode(GhostResponse{
		Status:   "completed",
		ImageURL: imageURL,
	})
}

func angleOrDefault(angle string) string {
	if angle == "back" {
		return "back"
	}
	return "front"
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(GhostResponse{Status: "error", Error: message})
}
