package faceswap

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

const headSwapPrompt = `Use Image 2 as the ABSOLUTE MASTER for the entire body, pose, clothing, neck position, and background. DO NOT change anything in Image 2 except for the head.

Task: Place the head from Image 1 onto the person in Image 2.

CRITICAL RULES:
- Zero changes to the body pose, arm positions, or shoulder alignment of Image 2.
- The new head must be anatomically integrated, matching the EXACT spatial rotation, head-tilt, and eye-gaze direction of the original person in Image 2.
- If Image 2 is looking away or at an angle, the identity from Image 1 must be perspective-warped and rotated to match.
- Image 1 is strictly for identity (facial features/hair). Ignore its camera angle and pose.

Photorealistic, seamless neck blending, perfect light matching to Image 2.`

const faceSwapPrompt = `Use Image 2 as the ABSOLUTE MASTER for the entire head-shape, hair, body, pose, and background. DO NOT change anything in Image 2 except for the facial features.

Task: Transplant the facial features from Image 1 onto the face in Image 2.

CRITICAL RULES:
- Zero changes to the hair, hairline, ears, or body of Image 2.
- Re-project the eyes, nose, and mouth from Image 1 to perfectly fit the EXACT rotation, tilt, and 3D angle of the head in Image 2.
- The resulting face must look identical to the identity in Image 1 but following the perspective of Image 2.
- Match lighting and skin tone of Image 2 flawlessly.

Photorealistic result with no facial distortion.`

// SwapRequest is the inbound JSON body for /api/face-head-swap. The
// reference image supplies the identity, the base image everything else.
type SwapRequest struct {
	ReferenceImageURL string `json:"referenceImageUrl"`
	BaseImageURL      string `json:"baseImageUrl"`
	SwapMode          string `json:"swapMode,omitempty"` // head_swap | face_swap
	Resolution        string `json:"resolution,omitempty"`
	AspectRatio       string `json:"aspectRatio,omitempty"`
	Seed              *int64 `json:"seed,omitempty"`
}

type SwapResponse struct {
	Status string `json:"status"`
	Image  string `json:"image,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
	Error  string `json:"error,omitempty"`
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

// RegisterRoutes - face/head swap routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/face-head-swap", h.HandleSwap).Methods("POST", "OPTIONS")
	log.Println("✅ Face/head swap routes registered")
}

// HandleSwap - POST /api/face-head-swap
func (h *Handler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ReferenceImageURL == "" || req.BaseImageURL == "" {
		writeError(w, http.StatusBadRequest, "Both images are required")
		return
	}

	prompt := faceSwapPrompt
	if req.SwapMode == "head_swap" {
		prompt = headSwapPrompt
	}

	log.Printf("🔄 [FaceSwap] Running %s", swapModeOrDefault(req.SwapMode))

	resp, err := h.fal.Invoke(r.Context(), &fal.Request{
		Prompt:       prompt,
		ImageURLs:    []string{req.ReferenceImageURL, req.BaseImageURL},
		AspectRatio:  valueOrDefault(req.AspectRatio, "3:4"),
		Resolution:   valueOrDefault(req.Resolution, "1K"),
		Seed:         req.Seed,
		OutputFormat: "png",
	})
	if err != nil {
		status := http.StatusInternalServerError
		var provErr *fal.ProviderError
		if errors.As(err, &provErr) {
			status = http.StatusBadGateway
		}
		log.Printf("❌ [FaceSwap] Failed: %v", err)
		writeError(w, status, fmt.Sprintf("Swap failed: %v", err))
		return
	}
	if len(resp.Images) == 0 {
		writeError(w, http.StatusBadGateway, "No image in response")
		return
	}

	imageURL := h.storage.PersistURL(r.Context(), resp.Images[0].URL, "face-swap")
	json.NewEncoder(w).Encode(SwapResponse{
		Status: "success",
		Image:  imageURL,
		Seed:   resp.Seed,
	})
}

func swapModeOrDefault(mode string) string {
	if mode == "head_swap" {
		return "head_swap"
	}
	return "face_swap"
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(SwapResponse{Status: "error", Error: message})
}
