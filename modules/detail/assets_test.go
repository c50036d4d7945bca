package detail

import (
	"testing"

	"atelier-studio-server/modules/studio"
)

func url(slot studio.AssetSlot) string {
	return "https://cdn.example.com/" + string(slot) + ".png"
}

func contains(urls []string, u string) bool {
	for _, x := range urls {
		if x == u {
			return true
		}
	}
	return false
}

func fullBundle() studio.AssetBundle {
	return studio.AssetBundle{
		studio.SlotBackground:  url(studio.SlotBackground),
		studio.SlotTopFront:    url(studio.SlotTopFront),
		studio.SlotTopBack:     url(studio.SlotTopBack),
		studio.SlotBottomFront: url(studio.SlotBottomFront),
		studio.SlotBottomBack:  url(studio.SlotBottomBack),
		studio.SlotMainProduct: url(studio.SlotMainProduct),
		studio.SlotShoes:       url(studio.SlotShoes),
	}
}

func TestSelectAssetsStrictViewFilter(t *testing.T) {
	bundle := fullBundle()

	// Front sheet: no back references.
	front := SelectAssets(&DetailRequest{WorkflowType: "lower", DetailView: "front"}, bundle)
	if contains(front, url(studio.SlotTopBack)) || contains(front, url(studio.SlotBottomBack)) {
		t.Error("front sheet must not carry back references")
	}
	if !contains(front, url(studio.SlotBottomFront)) || !contains(front, url(studio.SlotMainProduct)) {
		t.Error("front sheet must carry front and main product references")
	}

	// Back sheet: back references only, no fallback to front or main.
	back := SelectAssets(&DetailRequest{WorkflowType: "lower", DetailView: "back"}, bundle)
	if contains(back, url(studio.SlotTopFront)) || contains(back, url(studio.SlotBottomFront)) || contains(back, url(studio.SlotMainProduct)) {
		t.Error("back sheet must not carry front or main references")
	}
	if !contains(back, url(studio.SlotBottomBack)) {
		t.Error("back sheet must carry back references")
	}

	// Angled sheet: both sides.
	angled := SelectAssets(&DetailRequest{WorkflowType: "lower", DetailView: "angled"}, bundle)
	for _, slot := range []studio.AssetSlot{studio.SlotTopFront, studio.SlotTopBack, studio.SlotBottomFront, studio.SlotBottomBack, studio.SlotMainProduct} {
		if !contains(angled, url(slot)) {
			t.Errorf("angled sheet missing %s", slot)
		}
	}
}

func TestSelectAssetsUpperOrderingAndShoes(t *testing.T) {
	bundle := fullBundle()
	req := &DetailRequest{
		WorkflowType:   "upper",
		DetailView:     "front",
		ModelImage:     "https://cdn.example.com/model.png",
		InnerwearImage: "https://cdn.example.com/tee.png",
	}
	assets := SelectAssets(req, bundle)

	if len(assets) < 2 || assets[0] != req.ModelImage || assets[1] != req.InnerwearImage {
		t.Errorf("model and innerwear must lead the list, got %v", assets)
	}
	if contains(assets, url(studio.SlotShoes)) {
		t.Error("upper sheets crop above the feet, no shoes")
	}

	// Lower sheets keep the shoes.
	lower := SelectAssets(&DetailRequest{WorkflowType: "lower", DetailView: "front"}, bundle)
	if !contains(lower, url(studio.SlotShoes)) {
		t.Error("lower sheets must carry the shoe reference")
	}

	// Model/innerwear fields are ignored outside the upper workflow.
	lowerWithModel := SelectAssets(&DetailRequest{WorkflowType: "lower", DetailView: "front", ModelImage: "https://cdn.example.com/model.png"}, bundle)
	if contains(lowerWithModel, "https://cdn.example.com/model.png") {
		t.Error("model image is an upper-workflow styling input")
	}
}

func TestValidateRequest(t *testing.T) {
	if err := validateRequest(&DetailRequest{ProductName: " "}); err == nil {
		t.Error("blank product name must be rejected")
	}
	if err := validateRequest(&DetailRequest{ProductName: "Gömlek", WorkflowType: "upper"}); err == nil {
		t.Error("upper workflow without a model image must be rejected")
	}
	if err := validateRequest(&DetailRequest{ProductName: "pantolon", WorkflowType: "lower"}); err != nil {
		t.Errorf("lower workflow needs no model image, got %v", err)
	}
}
