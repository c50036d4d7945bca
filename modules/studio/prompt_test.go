package studio

import (
	"strings"
	"testing"
)

func countOccurrences(t *testing.T, haystack string, fragments ...string) int {
	t.Helper()
	n := 0
	for _, f := range fragments {
		n += strings.Count(haystack, f)
	}
	return n
}

// Exactly one of the tucked/untucked negative fragments must be present for
// tuck-sensitive workflows, on every view, whatever the flag combination.
func TestNegativeTuckFragmentsMutuallyExclusive(t *testing.T) {
	for _, tucked := range []bool{true, false} {
		for _, view := range []View{ViewStyling, ViewFront, ViewSide, ViewBack} {
			opts := StylingOptions{ProductName: "keten pantolon", Tucked: tucked}
			_, negative := CompilePrompt(view, WorkflowLower, opts, AssetBundle{})

			hasTucked := strings.Contains(negative, negTucked)
			hasUntucked := strings.Contains(negative, negUntucked)
			if hasTucked == hasUntucked {
				t.Errorf("view=%s tucked=%v: want exactly one tuck negative, got tucked=%v untucked=%v",
					view, tucked, hasTucked, hasUntucked)
			}
			// The fragment forbids the state the positive prompt did NOT select.
			if tucked && !hasUntucked {
				t.Errorf("view=%s tucked=true: negative should forbid untucked look", view)
			}
			if !tucked && !hasTucked {
				t.Errorf("view=%s tucked=false: negative should forbid tucked look", view)
			}
		}
	}
}

// Technical angle views of an upper garment always render it untucked and
// fully closed, overriding whatever the styling shot was configured with.
func TestTechnicalViewsForceUntuckedClosed(t *testing.T) {
	for _, tucked := range []bool{true, false} {
		for _, open := range []bool{true, false} {
			opts := StylingOptions{ProductName: "Gömlek", Tucked: tucked, ButtonsOpen: open}
			for _, view := range TechnicalViews {
				prompt, negative := CompilePrompt(view, WorkflowUpper, opts, AssetBundle{})

				if !strings.Contains(prompt, "COMPLETELY UNTUCKED") {
					t.Errorf("view=%s tucked=%v: technical view must describe untucked wear", view, tucked)
				}
				if strings.Contains(prompt, "FULLY TUCKED INTO") {
					t.Errorf("view=%s tucked=%v: technical view must not describe tucked wear", view, tucked)
				}
				if !strings.Contains(prompt, "FULLY BUTTONED UP") {
					t.Errorf("view=%s open=%v: technical view must describe closed front", view, open)
				}
				if !strings.Contains(negative, negTucked) {
					t.Errorf("view=%s: technical view negative must forbid tucked look", view)
				}
			}
		}
	}
}

func TestStylingViewRespectsTuckAndButtons(t *testing.T) {
	opts := StylingOptions{ProductName: "Gömlek", Tucked: true, ButtonsOpen: true}
	prompt, negative := CompilePrompt(ViewStyling, WorkflowUpper, opts, AssetBundle{})

	if !strings.Contains(prompt, "FULLY TUCKED INTO") {
		t.Error("styling view should honor tucked=true")
	}
	if !strings.Contains(prompt, "front is OPEN") {
		t.Error("styling view should honor buttonsOpen=true")
	}
	if !strings.Contains(negative, negUntucked) || !strings.Contains(negative, negClosedFront) {
		t.Error("negatives should forbid the unselected states")
	}
}

func TestBeltVisibilityGate(t *testing.T) {
	bundle := AssetBundle{SlotBelt: "https://cdn.example.com/belt.png"}
	beltFragment := "belt reference image"

	tests := []struct {
		name     string
		view     View
		workflow WorkflowType
		opts     StylingOptions
		want     bool
	}{
		{"upper untucked closed styling excludes", ViewStyling, WorkflowUpper, StylingOptions{}, false},
		{"tucked includes", ViewStyling, WorkflowUpper, StylingOptions{Tucked: true}, true},
		{"open front includes", ViewStyling, WorkflowUpper, StylingOptions{ButtonsOpen: true}, true},
		{"technical view includes", ViewFront, WorkflowUpper, StylingOptions{}, true},
		{"lower workflow includes", ViewStyling, WorkflowLower, StylingOptions{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.ProductName = "Gömlek"
			prompt, _ := CompilePrompt(tt.view, tt.workflow, tt.opts, bundle)
			if got := strings.Contains(prompt, beltFragment); got != tt.want {
				t.Errorf("belt fragment present = %v, want %v", got, tt.want)
			}
			if got := BeltVisible(tt.view, tt.workflow, tt.opts); got != tt.want {
				t.Errorf("BeltVisible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShoeFragmentsFollowSelection(t *testing.T) {
	bundle := AssetBundle{SlotShoes: "https://cdn.example.com/shoes.png"}

	// Upper workflow crops above the feet: no shoe fragments anywhere.
	prompt, negative := CompilePrompt(ViewStyling, WorkflowUpper, StylingOptions{ProductName: "Gömlek"}, bundle)
	if strings.Contains(prompt, "shoe reference image") || strings.Contains(negative, negShoes) {
		t.Error("upper workflow must not mention shoes")
	}

	// Lower workflow full body: shoe reference and oversized-shoe negative.
	prompt, negative = CompilePrompt(ViewStyling, WorkflowLower, StylingOptions{ProductName: "pantolon"}, bundle)
	if !strings.Contains(prompt, "shoe reference image") {
		t.Error("lower workflow should reference the shoe image")
	}
	if !strings.Contains(negative, negShoes) {
		t.Error("lower workflow should carry the oversized-shoe negative")
	}

	// Without a shoe asset there is nothing to reference.
	prompt, negative = CompilePrompt(ViewStyling, WorkflowLower, StylingOptions{ProductName: "pantolon"}, AssetBundle{})
	if strings.Contains(prompt, "shoe reference image") || strings.Contains(negative, negShoes) {
		t.Error("no shoe asset: no shoe fragments")
	}
}

func TestGarmentTermHint(t *testing.T) {
	tests := []struct {
		product  string
		workflow WorkflowType
		want     string
	}{
		{"Verona", WorkflowLower, "Verona (pants/trousers)"},
		{"keten pantolon", WorkflowLower, "keten pantolon"},
		{"Milano", WorkflowDress, "Milano (dress/gown)"},
		{"Saten Elbise", WorkflowDress, "Saten Elbise"},
		{"Verona", WorkflowUpper, "Verona"},
	}
	for _, tt := range tests {
		if got := garmentTerm(tt.product, tt.workflow); got != tt.want {
			t.Errorf("garmentTerm(%q, %s) = %q, want %q", tt.product, tt.workflow, got, tt.want)
		}
	}
}

func TestFabricRemainderDropsFirstSentence(t *testing.T) {
	got := fabricRemainder("Linen fabric. Loose weave with visible slubs and natural creasing.")
	if got != "Loose weave with visible slubs and natural creasing." {
		t.Errorf("got %q", got)
	}
	// A single sentence survives untouched.
	if got := fabricRemainder("Heavy wool twill"); got != "Heavy wool twill" {
		t.Errorf("single sentence: got %q", got)
	}
	if got := fabricRemainder("   "); got != "" {
		t.Errorf("blank input: got %q", got)
	}
}

func TestCustomAndEditedPromptAppendedLast(t *testing.T) {
	opts := StylingOptions{
		ProductName:  "pantolon",
		CustomPrompt: "Soft window light from the left.",
		EditedPrompt: "Model leans against a concrete wall.",
	}
	prompt, _ := CompilePrompt(ViewStyling, WorkflowLower, opts, AssetBundle{})

	customIdx := strings.Index(prompt, opts.CustomPrompt)
	editedIdx := strings.Index(prompt, opts.EditedPrompt)
	if customIdx < 0 || editedIdx < 0 {
		t.Fatal("custom and edited prompts must both appear")
	}
	if customIdx > editedIdx {
		t.Error("custom prompt must precede edited prompt")
	}
	if editedIdx+len(opts.EditedPrompt) != len(prompt) {
		t.Error("edited prompt must be the final fragment")
	}
}

func TestPromptIsDeterministic(t *testing.T) {
	opts := StylingOptions{ProductName: "Saten Elbise", Gender: "female", PoseFocus: FocusFull}
	bundle := AssetBundle{SlotDressFront: "https://cdn.example.com/dress.png", SlotModel: "https://cdn.example.com/model.png"}

	p1, n1 := CompilePrompt(ViewStyling, WorkflowDress, opts, bundle)
	p2, n2 := CompilePrompt(ViewStyling, WorkflowDress, opts, bundle)
	if p1 != p2 || n1 != n2 {
		t.Error("identical inputs must compile to identical prompts")
	}
	if countOccurrences(t, n1, negQualityBaseline) != 1 {
		t.Error("quality baseline must appear exactly once")
	}
}
