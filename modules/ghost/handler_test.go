package ghost

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
			"images": []map[string]string{{"url": "https://provider.example.com/ghost.png"}},
		})
	}))
	t.Cleanup(srv.Close)
	return &Handler{
		fal: &fal.Client{Endpoint: srv.URL, Key: "test-key", HTTPClient: srv.Client()},
	}
}

func postGhost(t *testing.T, h *Handler, body GhostRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/ghost", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleGhost(rec, req)
	return rec
}

func TestGhostRequiresImages(t *testing.T) {
	h := newTestHandler(t, &fal.Request{})

	rec := postGhost(t, h, GhostRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no images: want 400, got %d", rec.Code)
	}

	// Blank entries are filtered before the count check.
	rec = postGhost(t, h, GhostRequest{Images: []string{"", ""}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank images: want 400, got %d", rec.Code)
	}
}

func TestGhostAngleSelectsPrompt(t *testing.T) {
	var captured fal.Request
	h := newTestHandler(t, &captured)

	rec := postGhost(t, h, GhostRequest{Images: []string{"https://cdn.example.com/shirt.png"}, Angle: "back"})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(captured.Prompt, "Back 3/4 (Back-Right Three-Quarter)") {
		t.Error("back angle must use the back master prompt")
	}
	if captured.AspectRatio != "2:3" {
		t.Errorf("aspect ratio must be locked to 2:3, got %s", captured.AspectRatio)
	}

	// Anything else, including empty, renders the front view.
	postGhost(t, h, GhostRequest{Images: []string{"https://cdn.example.com/shirt.png"}})
	if !strings.Contains(captured.Prompt, "Front 3/4 (Front-Left Three-Quarter)") {
		t.Error("default angle must use the front master prompt")
	}

	var resp GhostResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "completed" || resp.ImageURL == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
