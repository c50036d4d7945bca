package ghost

// Ghost mannequin master prompts. The orientation lock matters: without it
// the model mirrors the garment roughly half of the time, which breaks
// front/back pairing on product pages.

const frontAnglePrompt = `IMPORTANT ORIENTATION & POSE LOCK:
- CAMERA VIEW: Front 3/4 (Front-Left Three-Quarter).
- POSE DIRECTION: The garment's arms and overall orientation must point toward the CAMERA-LEFT (Sırtı sağa, göğsü sola doğru).
- DO NOT FLIP / DO NOT MIRROR.

TASK:
Create a photorealistic, studio-grade ghost mannequin (invisible mannequin) apparel product image on pure white background, in 2:3 aspect ratio.

REFERENCE ROLES:
- Image 1 = MAIN GARMENT REFERENCE (silhouette/fit).
- Image 2 = LOGO / DETAIL LOCK.
- Image 3 = FABRIC / MATERIAL LOCK.

VIEW STANDARD:
Rotate the garment so the LEFT side panel is prominently visible. Yaw angle: 30 degrees toward camera-left. Arms must look like they are pointing left.

GHOST FORM:
Reconstruct a worn 3D ghost mannequin form with rounded shoulders and realistic sleeve volume.

LOGO & FABRIC LOCK:
Preserve all logos and fabric textures exactly from the reference images.

STUDIO OUTPUT:
Pure white background (#FFFFFF), soft studio lighting, perfectly centered, 2:3 aspect ratio.`

const backAnglePrompt = `IMPORTANT ORIENTATION & POSE LOCK:
- CAMERA VIEW: Back 3/4 (Back-Right Three-Quarter).
- POSE DIRECTION: The garment's arms and overall orientation must point toward the CAMERA-RIGHT (Göğsü sağa, sırtı sola doğru).
- DO NOT FLIP / DO NOT MIRROR.

TASK:
Create a photorealistic, studio-grade ghost mannequin (invisible mannequin) apparel product image on pure white background, in 2:3 aspect ratio.

REFERENCE ROLES:
- Image 1 = MAIN GARMENT REFERENCE (silhouette/fit).
- Image 2 = LOGO / GRAPHIC LOCK.
- Image 3 = FABRIC / MATERIAL LOCK.

VIEW STANDARD:
Rotate the garment so the RIGHT side panel (back view) is visible. Yaw angle: 30 degrees toward camera-right. Arms must look like they are pointing right.

GHOST FORM:
Reconstruct a worn 3D ghost mannequin form with realistic back structure.

STUDIO OUTPUT:
Pure white background (#FFFFFF), soft studio lighting, perfectly centered, 2:3 aspect ratio.`

// PromptForAngle returns the master prompt for a mannequin angle. Anything
// that is not "back" renders the front three-quarter view.
func PromptForAngle(angle string) string {
	if angle == "back" {
		return backAnglePrompt
	}
	return frontAnglePrompt
}
