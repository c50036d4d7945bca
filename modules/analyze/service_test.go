package analyze

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeImage(t *testing.T) {
	// Data URI with explicit mime type.
	data, mime, err := decodeImage("data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/jpeg" || string(data) != "hello" {
		t.Errorf("got mime=%s data=%q", mime, data)
	}

	// Raw base64 defaults to PNG.
	_, mime, err = decodeImage("aGVsbG8=")
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/png" {
		t.Errorf("raw payload should default to image/png, got %s", mime)
	}

	if _, _, err := decodeImage("not base64!!!"); err == nil {
		t.Error("invalid payload must be rejected")
	}
}

func TestParseAnalysis(t *testing.T) {
	// Fenced JSON gets unwrapped.
	data, err := parseAnalysis(TypeTechPack, "```json\n{\"visualPrompt\":\"linen weave\"}\n```")
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]string
	if err := json.Unmarshal(data, &parsed); err != nil || parsed["visualPrompt"] != "linen weave" {
		t.Errorf("got %s", data)
	}

	// Pose plain text gets wrapped as a description.
	data, err = parseAnalysis(TypePose, "Model is standing with hands akimbo.")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &parsed); err != nil || !strings.Contains(parsed["description"], "hands akimbo") {
		t.Errorf("got %s", data)
	}

	// Non-pose plain text is an error: the next model gets a chance.
	if _, err := parseAnalysis(TypeTechPack, "just prose"); err == nil {
		t.Error("non-JSON tech pack output must fail")
	}
	if _, err := parseAnalysis(TypeFit, ""); err == nil {
		t.Error("empty output must fail")
	}
}

func TestModelFallbackOrder(t *testing.T) {
	models := modelsFor(TypeTechPack)
	if len(models) == 0 || models[0] != "gemini-1.5-pro" {
		t.Errorf("tech pack analysis must prefer the strongest vision model, got %v", models)
	}
	seen := make(map[string]bool)
	for _, m := range models {
		if seen[m] {
			t.Errorf("duplicate model %s in fallback list", m)
		}
		seen[m] = true
	}
}

func TestEnglishForcedForAnalysisPrompts(t *testing.T) {
	for _, typ := range []AnalysisType{TypeTechPack, TypeFit, TypePose} {
		prompt := promptFor(typ, "tr")
		if !strings.HasPrefix(prompt, englishInstruction) {
			t.Errorf("%s prompt must force English output", typ)
		}
	}
}
