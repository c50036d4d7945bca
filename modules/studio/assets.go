package studio

import "log"

// maxReferenceImages is the provider's soft ceiling. Requests above it still
// go through, but quality degrades, so selection logs a warning.
const maxReferenceImages = 8

// SelectAssets builds the ordered reference-image list for one view. Order is
// part of the contract: the model weighs earlier images more heavily, so the
// model identity comes first, garment references last before the pose
// stickman. Returns a ValidationError when nothing survives filtering - the
// provider would otherwise generate a random garment.
func SelectAssets(view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle) ([]string, error) {
	urls := make([]string, 0, maxReferenceImages)
	add := func(slot AssetSlot) bool {
		if url, ok := bundle[slot]; ok {
			urls = append(urls, url)
			return true
		}
		return false
	}

	// 1. Model identity.
	add(SlotModel)

	// 2. Inner wear, upper workflow only: it is visible at the neckline even
	// when the outer garment is closed.
	if workflow == WorkflowUpper {
		add(SlotInnerWear)
	}

	// 3. Universal references, fixed order.
	add(SlotBackground)
	add(SlotDetail1)
	add(SlotDetail2)
	add(SlotDetail3)
	add(SlotFitPattern)
	add(SlotAccessories)
	add(SlotBag)
	add(SlotHat)
	add(SlotJewelry)
	if BeltVisible(view, workflow, opts) {
		add(SlotBelt)
	}
	add(SlotGlasses)

	// 4. Shoes only when the framing keeps them in frame.
	if ShoesIncluded(view, workflow, opts) {
		add(SlotShoes)
	}

	// 5. Garment references for this view: every matching slot for
	// front/side/styling, back views falling through to the closest
	// available substitute.
	urls = append(urls, garmentAssets(view, workflow, bundle)...)

	// 6. Optional jacket layer on top of the main outfit.
	add(SlotJacket)

	// 7. Pose stickman last: it drives body position, not appearance.
	if view == ViewStyling && opts.PoseStickman != "" {
		urls = append(urls, opts.PoseStickman)
	}

	if len(urls) == 0 {
		return nil, &ValidationError{Code: ErrCodeNoAssets, Message: "no reference images available for view " + string(view)}
	}
	if len(urls) > maxReferenceImages {
		log.Printf("⚠️ [Studio] %d reference images for %s view exceeds recommended %d, quality may degrade", len(urls), view, maxReferenceImages)
	}
	return urls, nil
}

// garmentAssets picks the garment slots for a view. Front and styling views
// send every present front slot plus the raw product shot together; side
// views additionally carry the back slots so the model sees both garment
// faces; back views prefer dedicated back references and fall back to the
// front reference, then to the raw product shot, so a back view is never
// generated blind.
func garmentAssets(view View, workflow WorkflowType, bundle AssetBundle) []string {
	pick := func(slots ...AssetSlot) []string {
		for _, slot := range slots {
			if url, ok := bundle[slot]; ok {
				return []string{url}
			}
		}
		return nil
	}
	pickAll := func(slots ...AssetSlot) []string {
		var out []string
		for _, slot := range slots {
			if url, ok := bundle[slot]; ok {
				out = append(out, url)
			}
		}
		return out
	}

	switch workflow {
	case WorkflowUpper:
		switch view {
		case ViewBack:
			return pick(SlotTopBack, SlotBackRef, SlotTopFront, SlotMainProduct)
		case ViewSide:
			return pickAll(SlotTopFront, SlotMainProduct, SlotTopBack, SlotBackRef)
		}
		return pickAll(SlotTopFront, SlotMainProduct)
	case WorkflowLower:
		switch view {
		case ViewBack:
			return pick(SlotBottomBack, SlotBackRef, SlotBottomFront, SlotMainProduct)
		case ViewSide:
			return pickAll(SlotBottomFront, SlotMainProduct, SlotBottomBack, SlotBackRef)
		}
		return pickAll(SlotBottomFront, SlotMainProduct)
	case WorkflowDress:
		switch view {
		case ViewBack:
			return pick(SlotBackRef, SlotDressFront, SlotMainProduct)
		case ViewSide:
			return pickAll(SlotDressFront, SlotMainProduct, SlotBackRef)
		}
		return pickAll(SlotDressFront, SlotMainProduct)
	case WorkflowSet:
		switch view {
		case ViewBack:
			if urls := pickAll(SlotTopBack, SlotBottomBack); len(urls) > 0 {
				return urls
			}
			if url := pick(SlotBackRef); url != nil {
				return url
			}
			if urls := pickAll(SlotTopFront, SlotBottomFront); len(urls) > 0 {
				return urls
			}
			return pick(SlotMainProduct)
		case ViewSide:
			return pickAll(SlotTopFront, SlotBottomFront, SlotMainProduct, SlotTopBack, SlotBottomBack, SlotBackRef)
		}
		return pickAll(SlotTopFront, SlotBottomFront, SlotMainProduct)
	}
	return pick(SlotMainProduct)
}
