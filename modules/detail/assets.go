package detail

import "atelier-studio-server/modules/studio"

// SelectAssets builds the strict per-view reference list for a spec sheet.
// Unlike the styling flow there is no fallback between views: a back sheet
// generated from front references would fabricate the back of the garment.
func SelectAssets(req *DetailRequest, bundle studio.AssetBundle) []string {
	assets := make([]string, 0, 12)
	add := func(slot studio.AssetSlot) {
		if url, ok := bundle[slot]; ok {
			assets = append(assets, url)
		}
	}

	// Model first: for upper-body sheets it anchors pose and body reference.
	if req.ModelImage != "" && req.WorkflowType == "upper" {
		assets = append(assets, req.ModelImage)
	}
	if req.InnerwearImage != "" && req.WorkflowType == "upper" {
		assets = append(assets, req.InnerwearImage)
	}

	add(studio.SlotBackground)
	add(studio.SlotDetail1)
	add(studio.SlotDetail2)
	add(studio.SlotDetail3)
	add(studio.SlotFitPattern)
	// Cowboy-shot framing never shows feet.
	if req.WorkflowType != "upper" {
		add(studio.SlotShoes)
	}
	add(studio.SlotAccessories)
	add(studio.SlotBag)
	add(studio.SlotHat)
	add(studio.SlotJewelry)
	add(studio.SlotGlasses)
	add(studio.SlotBelt)

	switch DetailView(req.DetailView) {
	case ViewBack:
		// Back references only, no front contamination.
		add(studio.SlotTopBack)
		add(studio.SlotBottomBack)
	case ViewAngled:
		// Angled sheets need both sides.
		add(studio.SlotTopFront)
		add(studio.SlotBottomFront)
		add(studio.SlotTopBack)
		add(studio.SlotBottomBack)
		add(studio.SlotMainProduct)
	default:
		add(studio.SlotTopFront)
		add(studio.SlotBottomFront)
		add(studio.SlotMainProduct)
	}

	return assets
}
