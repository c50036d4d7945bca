package worker

import (
	"testing"

	"atelier-studio-server/modules/studio"
)

func TestIsTerminal(t *testing.T) {
	for _, status := range []string{StatusCompleted, StatusFailed, StatusCancelled} {
		if !IsTerminal(status) {
			t.Errorf("%s must be terminal", status)
		}
	}
	for _, status := range []string{StatusQueued, StatusProcessing, ""} {
		if IsTerminal(status) {
			t.Errorf("%s must not be terminal", status)
		}
	}
}

func TestViewStatus(t *testing.T) {
	if got := viewStatus(studio.ViewResult{View: studio.ViewFront, ImageURL: "https://x/y.png"}); got != StatusCompleted {
		t.Errorf("successful view: got %s", got)
	}
	if got := viewStatus(studio.ViewResult{View: studio.ViewBack, Error: "boom"}); got != StatusFailed {
		t.Errorf("failed view: got %s", got)
	}
}

func TestNewQueueNilClient(t *testing.T) {
	// A nil queue signals "async unavailable" to the generate handler.
	if q := NewQueue(nil); q != nil {
		t.Error("nil redis client must produce a nil queue")
	}
}
