package studio

import (
	"fmt"
	"strings"
)

// Negative-prompt fragments for known model biases. The tucked/untucked and
// open/closed pairs are mutually exclusive: exactly one of each pair is
// appended, selected by the corresponding positive-prompt branch.
const (
	negQualityBaseline = "low quality, blurry, distorted, deformed hands, deformed face, extra garments"
	negShoes           = "oversized shoes, chunky shoes, large footwear, clown shoes, big shoes, thick soles, platform shoes, bulky sneakers, exaggerated footwear, disproportionate shoes, huge feet, giant shoes, unrealistic shoe size, shoes too big for body"
	negOpenFront       = "open shirt, unbuttoned, open front, chest visible"
	negClosedFront     = "buttoned up shirt, closed front, fastened buttons, zipped up garment"
	negTucked          = "tucked in shirt, shirt inside pants, waistband visible, partial tuck, front tuck, half tuck, any part of shirt inside pants"
	negUntucked        = "untucked shirt, shirt hanging out, loose fabric over waistband, shirt draping over pants"
	negFlatFabric      = "flat fabric, smooth texture, plain surface, digital print look, no texture, solid color fabric, screen print, no weave visible, uniform surface, plastic looking fabric"
	negCropping        = "cropped head, cut off head, missing head, partial face, close up, zoomed in, out of frame, cropped feet, missing shoes"
)

// fragment is one (guard, text) rule. CompilePrompt evaluates the ordered
// rule list into a list of active fragments and joins them once; fragments
// never reorder.
type fragment struct {
	when bool
	text string
}

// CompilePrompt deterministically builds the prompt and negative prompt for
// one view. Pure function: no I/O, no failure modes; missing optional fields
// degrade to omitted fragments.
func CompilePrompt(view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle) (string, string) {
	prompt := joinFragments(promptRules(view, workflow, opts, bundle), " ")
	negative := joinFragments(negativeRules(view, workflow, opts, bundle), ", ")
	return prompt, negative
}

func joinFragments(rules []fragment, sep string) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.when && r.text != "" {
			parts = append(parts, r.text)
		}
	}
	return strings.Join(parts, sep)
}

// tuckedSelected resolves the effective tuck state for a view. Technical
// angle views always show the upper garment untucked, whatever the styling
// shot was configured with.
func tuckedSelected(view View, workflow WorkflowType, opts StylingOptions) bool {
	if workflow == WorkflowUpper && view != ViewStyling {
		return false
	}
	return opts.Tucked
}

// closedFrontSelected resolves the effective closure state for a view.
// Technical angle views always force a fully closed front.
func closedFrontSelected(view View, opts StylingOptions) bool {
	if view != ViewStyling {
		return true
	}
	return !opts.ButtonsOpen
}

// BeltVisible gates the belt asset and its prompt fragments. With an upper
// workflow styling shot worn untucked and closed, the shirt hem covers the
// waistband, so an uploaded belt is suppressed entirely.
func BeltVisible(view View, workflow WorkflowType, opts StylingOptions) bool {
	if workflow == WorkflowUpper && view == ViewStyling &&
		!opts.Tucked && !opts.ButtonsOpen {
		return false
	}
	return true
}

// ShoesIncluded gates the shoe asset and its prompt fragments. Upper workflow
// uses cowboy-shot framing that crops above the feet; styling close crops do
// the same.
func ShoesIncluded(view View, workflow WorkflowType, opts StylingOptions) bool {
	if workflow == WorkflowUpper {
		return false
	}
	if view == ViewStyling {
		switch opts.PoseFocus {
		case FocusUpper, FocusCloseup, FocusDetail:
			return false
		}
	}
	return true
}

// closureApplies reports whether button/closure phrasing makes sense for this
// garment at all.
func closureApplies(workflow WorkflowType, opts StylingOptions, bundle AssetBundle) bool {
	if workflow == WorkflowUpper {
		return true
	}
	lowerName := strings.ToLower(opts.ProductName)
	if strings.Contains(lowerName, "shirt") || strings.Contains(lowerName, "jacket") ||
		strings.Contains(lowerName, "gömlek") || strings.Contains(lowerName, "ceket") {
		return true
	}
	return bundle.Has(SlotTopFront)
}

func promptRules(view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle) []fragment {
	tucked := tuckedSelected(view, workflow, opts)
	closed := closedFrontSelected(view, opts)
	styling := view == ViewStyling

	rules := []fragment{
		// 1. Base subject clause.
		{true, openingSentence(workflow)},
		{true, subjectSentence(workflow, opts)},

		// 2. Camera and pose per view.
		{styling, stylingFraming(opts)},
		{styling, "Dynamic fashion pose."},
		{!styling, technicalFraming(view, workflow)},
		{!styling, "Standing straight pose."},

		// 3. Fabric description injection from upstream analysis.
		{fabricRemainder(opts.ProductDescription) != "", "The garment material is " + fabricRemainder(opts.ProductDescription) + "."},
		{fabricRemainder(opts.ProductDescription) != "", "FABRIC TEXTURE (CRITICAL): match the reference image texture exactly. Maintain visible thread texture and material depth. DO NOT render as flat or smooth digital print."},
		{fabricRemainder(opts.ProductDescription) == "", "Fabric should show realistic textile texture - visible weave, thread structure, material depth. NOT flat or digitally printed look."},

		// 4. Fit description (meaningful for lower-body garments).
		{workflow == WorkflowLower && opts.FitDescription != "", fitSentence(opts.FitDescription)},
	}

	// 5. Workflow-specific body rules.
	switch workflow {
	case WorkflowLower:
		// Always clothe the model: prevents a bare-chested result when the
		// only garment reference is a pair of pants.
		rules = append(rules,
			fragment{!tucked, "The model is wearing a white undershirt. The upper garment hangs loose over the waistband."},
			fragment{tucked, "The model is wearing a tight white undershirt completely tucked inside the pants. The waistband, button, and belt loops are fully visible and uncovered. No shirt fabric covering the waist line."},
		)
	case WorkflowUpper:
		rules = append(rules,
			fragment{closed, "Buttons: CLOSED. The garment is FULLY BUTTONED UP. Front opening is closed. Inner wear is visible ONLY at the neckline/collar."},
			fragment{!closed, "The garment front is OPEN, unbuttoned/unzipped, revealing what's underneath."},
			fragment{tucked, "The MAIN OUTER GARMENT is FULLY TUCKED INTO the pants waistband. Waistband fully visible. Belt loops exposed. No fabric draping over waist."},
			fragment{!tucked, "The top is worn COMPLETELY UNTUCKED. The shirt hangs ENTIRELY OUTSIDE the pants with the FULL hem visible below. ABSOLUTELY NO part of the shirt is inside the pants - NOT partially tucked, NOT half-tucked, NOT front-tucked. The shirt drapes naturally over the waistband."},
		)
		if bundle.Has(SlotInnerWear) {
			rules = append(rules,
				fragment{true, "Underneath is an undershirt/t-shirt as shown in the inner wear reference. CRITICAL: it MUST EXACTLY match the provided inner wear reference image in color, style, and fabric."},
				fragment{opts.InnerwearTucked, "The UNDERSHIRT/INNERWEAR is TUCKED INTO the pants, waistband covers the innerwear hem."},
				fragment{!opts.InnerwearTucked, "The undershirt/innerwear hangs OUTSIDE the pants, its hem visible below the waistband."},
			)
		}
	case WorkflowDress, WorkflowSet:
		rules = append(rules,
			fragment{true, "Full-length garment fully visible from head to toe. Do not crop the feet."},
			fragment{workflow == WorkflowSet, "The model wears the matching top and bottom together as one coordinated set."},
		)
	}

	// Closure phrasing for non-upper garments that still have a top layer.
	if workflow != WorkflowUpper && closureApplies(workflow, opts, bundle) {
		rules = append(rules,
			fragment{closed, "Buttons: CLOSED. The garment is FULLY BUTTONED UP. Front opening is closed."},
			fragment{!closed, "The garment is worn open."},
		)
	}

	rules = append(rules,
		// Layering.
		fragment{bundle.Has(SlotJacket), "Wearing a jacket/coat as an OUTER layer over the main outfit. The jacket is the outermost layer."},
		fragment{!bundle.Has(SlotJacket) && bundle.Has(SlotTopFront) && workflow != WorkflowUpper, "Wearing an upper garment matching the provided upper front reference image."},

		// 6. Belt visibility gate.
		fragment{bundle.Has(SlotBelt) && BeltVisible(view, workflow, opts), "Wearing the exact belt shown in the provided belt reference image."},

		// 7. Shoe size control: always-on mitigation against the model's
		// oversized-footwear bias whenever shoes are in frame.
		fragment{bundle.Has(SlotShoes) && ShoesIncluded(view, workflow, opts), "Shoes: CRITICAL: Model is wearing the EXACT shoes shown in the provided shoe reference image. Copy shoe color, style, and shape EXACTLY. Proportional slim footwear, NOT oversized."},

		// Identity and hair.
		fragment{bundle.Has(SlotModel), "Model identity (face and body) must strictly match the provided model reference image."},
		fragment{opts.HairBehindShoulders, "STYLING: The model's hair is neatly tucked behind the shoulders and back. The hair MUST NOT cover the garment, shoulders, or neckline. Full visibility of the product front."},

		// 8. Pose source, styling shots only.
		fragment{styling && opts.PoseDescription != "", poseSentence(opts.PoseDescription)},
		fragment{styling && opts.PoseStickman != "", "The model is mimicking the pose from the stickman pose reference image. Use ONLY the body position (arms, legs, stance) from the pose reference."},
	)

	// Detail-focus styling shots carry extra preservation language.
	if styling && opts.PoseFocus == FocusDetail {
		rules = append(rules,
			fragment{opts.DetailView == "angled", "View: Angled. Rotation: Slight 10-20 degrees vertical axis. Camera facing bias: front_faces_camera_left. Keep full visibility."},
			fragment{opts.DetailView == ViewBack, "View: Back. Camera Angle: Eye Level. Lighting: Soft Diffused Studio."},
			fragment{opts.DetailView != "angled" && opts.DetailView != ViewBack, "View: Front. Camera Angle: Eye Level. Lighting: Soft Diffused Studio."},
			fragment{true, "Detail Preservation: Maximize label legibility, exact stitching transfer. Hallucination strictly disallowed."},
		)
	}

	rules = append(rules,
		// Background.
		fragment{bundle.Has(SlotBackground), "Background matches the provided background reference image exactly."},
		fragment{!bundle.Has(SlotBackground), "Clean studio background."},

		// Face visibility: front and styling only. Side/back views may not
		// have the face in frame at all.
		fragment{view == ViewFront || view == ViewStyling, "The model is looking at the camera."},

		// User prompt text last: custom prompt, then the edited prompt as an
		// additive suffix on top of the compiled text.
		fragment{opts.CustomPrompt != "", opts.CustomPrompt},
		fragment{opts.EditedPrompt != "", opts.EditedPrompt},
	)

	return rules
}

func negativeRules(view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle) []fragment {
	tucked := tuckedSelected(view, workflow, opts)
	closed := closedFrontSelected(view, opts)
	closure := closureApplies(workflow, opts, bundle)
	tuckApplies := workflow == WorkflowUpper || workflow == WorkflowLower

	return []fragment{
		{true, negQualityBaseline},
		{bundle.Has(SlotShoes) && ShoesIncluded(view, workflow, opts), negShoes},
		{closure && closed, negOpenFront},
		{closure && !closed, negClosedFront},
		{tuckApplies && !tucked, negTucked},
		{tuckApplies && tucked, negUntucked},
		{true, negFlatFabric},
		{workflow != WorkflowUpper, negCropping},
	}
}

func openingSentence(workflow WorkflowType) string {
	if workflow == WorkflowUpper {
		return "Cowboy Shot (Head to Mid-Thigh) fashion photography."
	}
	return "Medium format fashion photography."
}

func subjectSentence(workflow WorkflowType, opts StylingOptions) string {
	subject := "model"
	height := "175cm tall, wearing EU size 38 shoes"
	switch opts.Gender {
	case "male":
		subject = "male model"
		height = "190cm tall, wearing EU size 43 shoes"
	case "female":
		subject = "female model"
	}
	return fmt.Sprintf("A professional %s (%s) is posing wearing %s. Realistic body proportions, correctly sized footwear.",
		subject, height, garmentTerm(opts.ProductName, workflow))
}

// garmentTerm appends a parenthetical workflow hint only when the raw product
// name does not already carry matching vocabulary, so "keten pantolon" stays
// as-is while "Verona" becomes "Verona (pants/trousers)".
func garmentTerm(productName string, workflow WorkflowType) string {
	lowerName := strings.ToLower(productName)
	switch workflow {
	case WorkflowLower:
		if !containsAny(lowerName, lowerKeywords) {
			return productName + " (pants/trousers)"
		}
	case WorkflowDress:
		if !containsAny(lowerName, fullBodyKeywords) {
			return productName + " (dress/gown)"
		}
	case WorkflowSet:
		if !containsAny(lowerName, setKeywords) {
			return productName + " (matching two-piece set)"
		}
	}
	return productName
}

func stylingFraming(opts StylingOptions) string {
	switch opts.PoseFocus {
	case FocusCloseup:
		return "Camera framing is close-up on chest and face, focusing on upper garment details."
	case FocusUpper:
		return "Camera framing is Cowboy Shot (Head to Mid-Thigh). Hands fully visible. Focus on upper body garment with some pants visible."
	case FocusLower:
		return "Camera framing is waist-down, focusing on pants and shoes."
	case FocusDetail:
		return "Detail shot. Framing: Waist to Above Knees (Lower Body Detail). Focus on garment construction and fabric."
	default:
		return "Camera framing is full body, head to toe visible."
	}
}

func technicalFraming(view View, workflow WorkflowType) string {
	shotDesc := fmt.Sprintf("Technical %s view", view)

	if workflow == WorkflowUpper {
		shotDesc += ", Cowboy Shot framing (Head to Mid-Thigh). Hands fully visible."
	} else {
		shotDesc += ", FULL BODY shot, Head to Toe visible, shoes visible."
	}

	switch view {
	case ViewFront:
		shotDesc += " Front facing. Neutral standing pose, arms hanging straight down at sides. NOT hands on hips. Symmetrical stance."
	case ViewSide:
		shotDesc += " Side profile view, full outfit visible."
	case ViewBack:
		shotDesc += " Back view."
		if workflow == WorkflowUpper {
			shotDesc += " Cowboy Shot framing from behind (Head to Mid-Thigh). Camera cuts off at thigh level. DO NOT show full legs or shoes."
		} else {
			shotDesc += " FULL BODY BACK VIEW. Head, torso, legs, and shoes MUST be fully visible from behind. Do not crop head. Do not crop feet."
		}
	}

	return shotDesc
}

// fabricRemainder drops the first sentence of the analysis text: it restates
// the fabric name that is already present in the product name.
func fabricRemainder(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}
	if idx := strings.Index(description, ". "); idx >= 0 {
		return strings.TrimSpace(description[idx+2:])
	}
	return description
}

func fitSentence(fit string) string {
	parts := []string{fmt.Sprintf("FIT & SILHOUETTE (CRITICAL): %s.", fit)}

	fitLower := strings.ToLower(fit)
	switch {
	case strings.Contains(fitLower, "floor-length"):
		parts = append(parts, "LENGTH CONSTRAINT: The pants MUST touch the floor and cover the shoes entirely. Long pooling hem.")
	case strings.Contains(fitLower, "full-length"):
		parts = append(parts, "LENGTH CONSTRAINT: The pants MUST hit the floor exactly. Full length silhouette.")
	case strings.Contains(fitLower, "ankle-length"):
		parts = append(parts, "LENGTH CONSTRAINT: The hem MUST end precisely at the ankle bone. DO NOT extend to the floor. Visible gap between hem and shoes.")
	case strings.Contains(fitLower, "cropped"):
		parts = append(parts, "LENGTH CONSTRAINT: Cropped fit. The hem is 3 inches above the ankle. Clear visibility of ankles and socks/shoes.")
	case strings.Contains(fitLower, "culotte"):
		parts = append(parts, "LENGTH CONSTRAINT: Mid-calf length. Wide leg opening ending halfway down the shin.")
	}

	parts = append(parts, "Maintain these exact proportions relative to the model's height.")
	return strings.Join(parts, " ")
}

func poseSentence(description string) string {
	return "POSE INSTRUCTION: " + description
}
