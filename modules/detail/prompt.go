package detail

import (
	"fmt"
	"strings"
)

// Negative fragments for the spec-sheet flow. Color and background
// preservation are always on: a spec sheet that recolors the product is
// worthless.
const (
	negBaseline         = "low quality, blurry, distorted, white t-shirt hallucination, extra garments, ugly, deformed"
	negColorChange      = "different color, color shift, altered hue, changed saturation, wrong pattern colors, modified fabric color"
	negBackgroundChange = "different background, changed background, new background color, altered backdrop"
	negTucked           = "tucked in shirt, shirt inside pants, waistband visible, belt visible, partial tuck, front tuck, half tuck, shirt in waistband, any part of shirt inside pants"
	negUntucked         = "untucked shirt, shirt hanging out, loose shirt over waistband, shirt draping over pants"
)

// Framing tokens: upper-body products show garment plus some pants, lower
// products focus on the waist-to-knee region.
const (
	framingCowboyShot       = "cowboy_shot"
	framingWaistToAboveKnee = "waist_to_above_knees"
)

const promptHeader = "Technical Generative Photography Task. Follow this JSON specification strictly:\n"

// BuildPrompt assembles the full prompt and negative prompt for one spec
// sheet: the garment description enriched with styling clauses, pushed into
// the per-view JSON template.
func BuildPrompt(req *DetailRequest) (string, string) {
	description := styledDescription(req)
	framing := framingWaistToAboveKnee
	if req.WorkflowType == "upper" {
		framing = framingCowboyShot
	}

	var spec string
	switch DetailView(req.DetailView) {
	case ViewBack:
		spec = fmt.Sprintf(backDetailTemplate, description, req.Gender, framing)
	case ViewAngled:
		spec = fmt.Sprintf(angledDetailTemplate, description, req.Gender, framing)
	default:
		spec = fmt.Sprintf(frontDetailTemplate, description, req.Gender, framing)
	}

	return promptHeader + spec, buildNegative(req)
}

// styledDescription appends workflow styling clauses to the product name so
// the template's garment_description carries the full wear state.
func styledDescription(req *DetailRequest) string {
	description := req.ProductName

	switch req.WorkflowType {
	case "lower":
		// Always clothe the torso so the render is not topless.
		if req.Tucked {
			description += ". The model is wearing a tight white undershirt completely tucked inside the pants. The waistband, button, and belt loops are fully visible and uncovered. No shirt fabric covering the waist line"
		} else {
			description += ". The model is wearing a white undershirt"
		}
	case "upper":
		parts := make([]string, 0, 8)

		if req.FrontOpen {
			parts = append(parts, "The garment front is OPEN, unbuttoned/unzipped, revealing what's underneath")
		} else {
			parts = append(parts, "The garment front is fully CLOSED, all buttons buttoned/zipped up")
		}

		if req.UpperTucked {
			parts = append(parts, "The MAIN OUTER GARMENT is FULLY TUCKED INTO the pants waistband. Waistband fully visible. Belt loops exposed. No fabric draping over waist")
		} else {
			parts = append(parts,
				"The top is worn COMPLETELY UNTUCKED",
				"The shirt hangs ENTIRELY OUTSIDE the pants with the FULL hem visible below",
				"ABSOLUTELY NO part of the shirt is inside the pants - NOT partially tucked, NOT half-tucked, NOT front-tucked",
				"The shirt drapes naturally over the waistband, covering it completely",
			)
		}

		if req.InnerwearImage != "" {
			if req.FrontOpen {
				parts = append(parts, "Underneath is an undershirt/t-shirt as shown in reference, visible through open front")
			} else {
				parts = append(parts, "Underneath is an undershirt/t-shirt as shown in reference")
			}
			// Innerwear tuck state is independent from the outer garment.
			if req.InnerwearTucked == nil || *req.InnerwearTucked {
				parts = append(parts, "The UNDERSHIRT/INNERWEAR is TUCKED INTO the pants, waistband covers innerwear hem")
			} else {
				parts = append(parts, "The undershirt/innerwear hangs OUTSIDE the pants, its hem visible below waistband")
			}
		}

		description += ". " + strings.Join(parts, ". ")
	}

	return description
}

func buildNegative(req *DetailRequest) string {
	parts := []string{negBaseline, negColorChange, negBackgroundChange}
	if req.WorkflowType == "upper" {
		if req.UpperTucked {
			parts = append(parts, negUntucked)
		} else {
			parts = append(parts, negTucked)
		}
	}
	return strings.Join(parts, ", ")
}

// Spec-sheet JSON templates. The JSON text itself is the prompt: the model
// follows structured specifications more strictly than prose. Placeholders
// are garment description, subject gender, framing crop.

const frontDetailTemplate = `{
  "task": "generate_model_worn_garment_image",
  "view": "front",
  "garment_description": "%s",
  "subject_gender": "%s",

  "CRITICAL_REFERENCE_RULES": {
    "fabric_color": "EXACTLY match the color from uploaded garment reference image - DO NOT alter hue, saturation, or brightness",
    "fabric_pattern": "EXACTLY replicate the pattern (stripes, checks, solid, print) from reference - same width, spacing, colors",
    "background": "USE THE EXACT uploaded background image - same color, same texture, same lighting - DO NOT change or invent new background",
    "overall_tone": "Preserve the exact color temperature and mood from reference images"
  },

  "framing": {
    "crop": "%s",
    "camera_angle": "eye_level",
    "lens_look": "50mm",
    "distortion": "none"
  },

  "model_pose": {
    "posture": "neutral_standing",
    "movement": "none",
    "fashion_pose": false
  },

  "lighting": {
    "type": "match_reference_lighting",
    "exposure": "same_as_reference",
    "shadow_style": "preserve_from_reference"
  },

  "background": {
    "source": "EXACT_uploaded_background_image",
    "modification": "NONE - use as-is",
    "color_change": "STRICTLY_FORBIDDEN"
  },

  "reference_policy": {
    "garment_details_source": "reference_images_only",
    "color_source": "reference_images_only",
    "pattern_source": "reference_images_only",
    "background_source": "uploaded_background_only",
    "hallucination": "strictly_disallowed",
    "creative_interpretation": "strictly_disallowed"
  },

  "detail_preservation": {
    "exact_colors": true,
    "exact_pattern": true,
    "exact_fabric_texture": true,
    "logos": { "preserve": true },
    "labels_and_text": {
      "legibility": "maximum",
      "no_warping": true,
      "no_mirroring": true
    },
    "stitching_and_hardware": {
      "exact_transfer": true
    }
  },

  "consistency_rules": {
    "angle_orientation": "locked",
    "color_consistency": "locked_to_reference",
    "reuse_orientation_on_rerender": true
  },

  "negative_constraints": [
    "DO NOT change garment color - keep exact color from reference",
    "DO NOT change stripe/pattern colors or widths",
    "DO NOT change background color or add new background",
    "DO NOT alter overall color temperature or mood",
    "no pose variation",
    "no stylization",
    "no invented details",
    "no white t-shirt hallucination",
    "no extra garments",
    "no color grading or filters",
    "no creative reinterpretation of fabric"
  ]
}`

const backDetailTemplate = `{
  "task": "generate_model_worn_garment_image",
  "view": "back",
  "garment_description": "%s",
  "subject_gender": "%s",

  "CRITICAL_REFERENCE_RULES": {
    "fabric_color": "EXACTLY match the color from uploaded garment reference image - DO NOT alter hue, saturation, or brightness",
    "fabric_pattern": "EXACTLY replicate the pattern from reference - same width, spacing, colors",
    "background": "USE THE EXACT uploaded background image - DO NOT change or invent new background",
    "overall_tone": "Preserve the exact color temperature and mood from reference images"
  },

  "framing": {
    "crop": "%s",
    "camera_angle": "eye_level",
    "lens_look": "50mm",
    "distortion": "none"
  },

  "model_pose": {
    "posture": "neutral_standing",
    "movement": "none",
    "fashion_pose": false
  },

  "lighting": {
    "type": "match_reference_lighting",
    "exposure": "same_as_reference",
    "shadow_style": "preserve_from_reference"
  },

  "background": {
    "source": "EXACT_uploaded_background_image",
    "modification": "NONE - use as-is",
    "color_change": "STRICTLY_FORBIDDEN"
  },

  "reference_policy": {
    "garment_details_source": "reference_images_only",
    "color_source": "reference_images_only",
    "pattern_source": "reference_images_only",
    "background_source": "uploaded_background_only",
    "hallucination": "strictly_disallowed",
    "creative_interpretation": "strictly_disallowed"
  },

  "detail_preservation": {
    "exact_colors": true,
    "exact_pattern": true,
    "exact_fabric_texture": true,
    "logos": { "preserve": true },
    "labels_and_text": {
      "legibility": "maximum",
      "no_warping": true,
      "no_mirroring": true
    },
    "stitching_and_hardware": {
      "exact_transfer": true
    }
  },

  "consistency_rules": {
    "angle_orientation": "locked",
    "color_consistency": "locked_to_reference",
    "reuse_orientation_on_rerender": true
  },

  "negative_constraints": [
    "DO NOT change garment color - keep exact color from reference",
    "DO NOT change stripe/pattern colors or widths",
    "DO NOT change background color or add new background",
    "DO NOT alter overall color temperature or mood",
    "no mirrored output",
    "no unreadable labels",
    "no reinterpretation of branding",
    "no white t-shirt hallucination",
    "no extra garments",
    "no color grading or filters"
  ]
}`

const angledDetailTemplate = `{
  "task": "generate_model_worn_garment_image",
  "view": "angled",
  "garment_description": "%s",
  "subject_gender": "%s",

  "CRITICAL_REFERENCE_RULES": {
    "fabric_color": "EXACTLY match the color from uploaded garment reference image - DO NOT alter hue, saturation, or brightness",
    "fabric_pattern": "EXACTLY replicate the pattern from reference - same width, spacing, colors",
    "background": "USE THE EXACT uploaded background image - DO NOT change or invent new background",
    "overall_tone": "Preserve the exact color temperature and mood from reference images"
  },

  "angle_definition": {
    "rotation": "slight",
    "rotation_degree": "10_to_20",
    "rotation_axis": "vertical",
    "camera_facing_bias": "front_faces_camera_left",
    "keep_full_visibility": true
  },

  "model_pose": {
    "posture": "neutral_standing",
    "body_rotation": "right",
    "movement": "none",
    "fashion_pose": false
  },

  "framing": {
    "crop": "%s",
    "camera_angle": "eye_level",
    "lens_look": "50mm",
    "distortion": "none"
  },

  "lighting": {
    "type": "match_reference_lighting",
    "exposure": "same_as_reference",
    "shadow_style": "preserve_from_reference"
  },

  "background": {
    "source": "EXACT_uploaded_background_image",
    "modification": "NONE - use as-is",
    "color_change": "STRICTLY_FORBIDDEN"
  },

  "reference_policy": {
    "garment_details_source": "reference_images_only",
    "color_source": "reference_images_only",
    "pattern_source": "reference_images_only",
    "background_source": "uploaded_background_only",
    "hallucination": "strictly_disallowed",
    "creative_interpretation": "strictly_disallowed"
  },

  "detail_preservation": {
    "exact_colors": true,
    "exact_pattern": true,
    "exact_fabric_texture": true,
    "logos": { "preserve": true },
    "labels_and_text": {
      "legibility": "maximum",
      "no_warping": true,
      "no_mirroring": true
    },
    "stitching_and_hardware": {
      "exact_transfer": true
    }
  },

  "consistency_rules": {
    "angle_orientation": "locked",
    "color_consistency": "locked_to_reference",
    "reuse_orientation_on_rerender": true
  },

  "negative_constraints": [
    "DO NOT change garment color - keep exact color from reference",
    "DO NOT change stripe/pattern colors or widths",
    "DO NOT change background color or add new background",
    "DO NOT alter overall color temperature or mood",
    "no opposite rotation",
    "no random angle",
    "do not invert camera-facing direction",
    "no white t-shirt hallucination",
    "no extra garments",
    "no color grading or filters"
  ]
}`
