package studio

import (
	"errors"
	"testing"
)

func urlFor(slot AssetSlot) string {
	return "https://cdn.example.com/" + string(slot) + ".png"
}

func bundleOf(slots ...AssetSlot) AssetBundle {
	b := make(AssetBundle, len(slots))
	for _, s := range slots {
		b[s] = urlFor(s)
	}
	return b
}

func indexOf(urls []string, url string) int {
	for i, u := range urls {
		if u == url {
			return i
		}
	}
	return -1
}

func TestSelectAssetsOrdering(t *testing.T) {
	bundle := bundleOf(SlotModel, SlotBackground, SlotShoes, SlotBottomFront)
	opts := StylingOptions{ProductName: "pantolon", PoseStickman: "https://cdn.example.com/pose.png"}

	urls, err := SelectAssets(ViewStyling, WorkflowLower, opts, bundle)
	if err != nil {
		t.Fatal(err)
	}

	model := indexOf(urls, urlFor(SlotModel))
	background := indexOf(urls, urlFor(SlotBackground))
	shoes := indexOf(urls, urlFor(SlotShoes))
	garment := indexOf(urls, urlFor(SlotBottomFront))
	pose := indexOf(urls, opts.PoseStickman)

	if model != 0 {
		t.Errorf("model identity must come first, got index %d", model)
	}
	if !(background < shoes && shoes < garment && garment < pose) {
		t.Errorf("unexpected order: background=%d shoes=%d garment=%d pose=%d", background, shoes, garment, pose)
	}
	if pose != len(urls)-1 {
		t.Error("pose stickman must come last")
	}
}

func TestSelectAssetsBackViewFallback(t *testing.T) {
	// Dedicated back reference wins.
	urls, err := SelectAssets(ViewBack, WorkflowLower, StylingOptions{}, bundleOf(SlotBottomBack, SlotBottomFront, SlotMainProduct))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotBottomBack)) < 0 || indexOf(urls, urlFor(SlotBottomFront)) >= 0 {
		t.Errorf("back view with back ref: got %v", urls)
	}

	// Without it, fall back to the front reference.
	urls, err = SelectAssets(ViewBack, WorkflowLower, StylingOptions{}, bundleOf(SlotBottomFront, SlotMainProduct))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotBottomFront)) < 0 {
		t.Errorf("back view without back ref: got %v", urls)
	}

	// Last resort is the raw product shot.
	urls, err = SelectAssets(ViewBack, WorkflowDress, StylingOptions{}, bundleOf(SlotMainProduct))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotMainProduct)) < 0 {
		t.Errorf("back view last resort: got %v", urls)
	}
}

// Side views show part of both garment faces, so they carry the front and
// back references together.
func TestSelectAssetsSideViewPullsBothFaces(t *testing.T) {
	bundle := bundleOf(SlotTopFront, SlotTopBack, SlotBackRef, SlotMainProduct)

	urls, err := SelectAssets(ViewSide, WorkflowUpper, StylingOptions{}, bundle)
	if err != nil {
		t.Fatal(err)
	}
	for _, slot := range []AssetSlot{SlotTopFront, SlotTopBack, SlotBackRef, SlotMainProduct} {
		if indexOf(urls, urlFor(slot)) < 0 {
			t.Errorf("side view must include %s, got %v", slot, urls)
		}
	}

	// A side view with only back references still gets them.
	urls, err = SelectAssets(ViewSide, WorkflowLower, StylingOptions{}, bundleOf(SlotBottomBack))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotBottomBack)) < 0 {
		t.Errorf("side view with back-only bundle: got %v", urls)
	}
}

// Front and styling views send every present front slot plus the raw product
// shot; a view-specific reference must not displace it.
func TestSelectAssetsFrontKeepsMainProduct(t *testing.T) {
	urls, err := SelectAssets(ViewFront, WorkflowUpper, StylingOptions{}, bundleOf(SlotTopFront, SlotMainProduct))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotTopFront)) < 0 || indexOf(urls, urlFor(SlotMainProduct)) < 0 {
		t.Errorf("front view must send front slot and main product together, got %v", urls)
	}

	urls, err = SelectAssets(ViewStyling, WorkflowSet, StylingOptions{}, bundleOf(SlotTopFront, SlotBottomFront, SlotMainProduct))
	if err != nil {
		t.Fatal(err)
	}
	for _, slot := range []AssetSlot{SlotTopFront, SlotBottomFront, SlotMainProduct} {
		if indexOf(urls, urlFor(slot)) < 0 {
			t.Errorf("set styling must include %s, got %v", slot, urls)
		}
	}
}

func TestSelectAssetsEmptyIsError(t *testing.T) {
	_, err := SelectAssets(ViewStyling, WorkflowUpper, StylingOptions{}, AssetBundle{})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if valErr.Code != ErrCodeNoAssets {
		t.Errorf("want %s, got %s", ErrCodeNoAssets, valErr.Code)
	}
}

func TestSelectAssetsGates(t *testing.T) {
	bundle := bundleOf(SlotModel, SlotBelt, SlotShoes, SlotTopFront, SlotInnerWear)

	// Upper styling, untucked, closed: belt suppressed, shoes cropped out,
	// innerwear still present for the neckline.
	urls, err := SelectAssets(ViewStyling, WorkflowUpper, StylingOptions{}, bundle)
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotBelt)) >= 0 {
		t.Error("belt must be suppressed for untucked closed upper styling")
	}
	if indexOf(urls, urlFor(SlotShoes)) >= 0 {
		t.Error("shoes must be excluded for upper workflow")
	}
	if indexOf(urls, urlFor(SlotInnerWear)) < 0 {
		t.Error("inner wear must be included for upper workflow")
	}

	// Tucked styling brings the belt back.
	urls, err = SelectAssets(ViewStyling, WorkflowUpper, StylingOptions{Tucked: true}, bundle)
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotBelt)) < 0 {
		t.Error("belt must be included when tucked")
	}

	// Lower workflow ignores the inner wear slot.
	urls, err = SelectAssets(ViewStyling, WorkflowLower, StylingOptions{}, bundleOf(SlotBottomFront, SlotInnerWear))
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotInnerWear)) >= 0 {
		t.Error("inner wear is upper-workflow only")
	}
}

func TestSelectAssetsSetUsesBothPieces(t *testing.T) {
	bundle := bundleOf(SlotTopFront, SlotBottomFront)
	urls, err := SelectAssets(ViewFront, WorkflowSet, StylingOptions{}, bundle)
	if err != nil {
		t.Fatal(err)
	}
	if indexOf(urls, urlFor(SlotTopFront)) < 0 || indexOf(urls, urlFor(SlotBottomFront)) < 0 {
		t.Errorf("set workflow should carry both pieces, got %v", urls)
	}
}

func TestNewAssetBundleRejectsUnknownSlots(t *testing.T) {
	_, err := NewAssetBundle(map[string]string{"front_image": "https://cdn.example.com/x.png"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	// Empty values are dropped, not kept as sentinels.
	bundle, err := NewAssetBundle(map[string]string{"model": "", "shoes": urlFor(SlotShoes)})
	if err != nil {
		t.Fatal(err)
	}
	if bundle.Has(SlotModel) {
		t.Error("empty value must be dropped")
	}
	if !bundle.Has(SlotShoes) {
		t.Error("non-empty value must survive")
	}
}
