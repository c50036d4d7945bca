package faceswap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atelier-studio-server/modules/common/fal"
)

func newTestHandler(t *testing.T, captured *fal.Request) *Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []map[string]string{{"url": "https://provider.example.com/swap.png"}},
			"seed":   424242,
		})
	}))
	t.Cleanup(srv.Close)
	return &Handler{
		fal: &fal.Client{Endpoint: srv.URL, Key: "test-key", HTTPClient: srv.Client()},
	}
}

func postSwap(t *testing.T, h *Handler, body SwapRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/face-head-swap", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleSwap(rec, req)
	return rec
}

func TestSwapRequiresBothImages(t *testing.T) {
	h := newTestHandler(t, &fal.Request{})

	for _, req := range []SwapRequest{
		{},
		{ReferenceImageURL: "https://cdn.example.com/face.png"},
		{BaseImageURL: "https://cdn.example.com/base.png"},
	} {
		if rec := postSwap(t, h, req); rec.Code != http.StatusBadRequest {
			t.Errorf("incomplete request %+v: want 400, got %d", req, rec.Code)
		}
	}
}

func TestSwapModeSelectsPromptAndOrder(t *testing.T) {
	var captured fal.Request
	h := newTestHandler(t, &captured)

	seed := int64(7)
	rec := postSwap(t, h, SwapRequest{
		ReferenceImageURL: "https://cdn.example.com/face.png",
		BaseImageURL:      "https://cdn.example.com/base.png",
		SwapMode:          "head_swap",
		Seed:              &seed,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}

	if !strings.Contains(captured.Prompt, "Place the head from Image 1") {
		t.Error("head_swap must use the head swap prompt")
	}
	// Image 1 = identity reference, Image 2 = base: order is load-bearing.
	if len(captured.ImageURLs) != 2 || captured.ImageURLs[0] != "https://cdn.example.com/face.png" {
		t.Errorf("reference image must come first, got %v", captured.ImageURLs)
	}
	if captured.Seed == nil || *captured.Seed != 7 {
		t.Error("explicit seed must pass through")
	}

	// Default mode is face swap.
	captured = fal.Request{}
	postSwap(t, h, SwapRequest{
		ReferenceImageURL: "https://cdn.example.com/face.png",
		BaseImageURL:      "https://cdn.example.com/base.png",
	})
	if !strings.Contains(captured.Prompt, "Transplant the facial features from Image 1") {
		t.Error("default mode must use the face swap prompt")
	}
	if captured.Seed != nil {
		t.Error("no seed supplied: none must be sent")
	}

	var resp SwapResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || resp.Image == "" || resp.Seed != 424242 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
