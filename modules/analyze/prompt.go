package analyze

// Analysis prompts. English is forced for all three analysis types: the
// output feeds image-generation prompts directly, and prompt adherence drops
// sharply outside English. The language parameter only affects other uses.

const englishInstruction = "RESPOND IN ENGLISH ONLY. TECHNICAL FASHION TERMINOLOGY."

func languageInstruction(analysisType AnalysisType, language string) string {
	switch analysisType {
	case TypeTechPack, TypeFit, TypePose:
		return englishInstruction
	}
	if language == "tr" {
		return "RESPOND IN TURKISH. Translate Technical Terms to professional Turkish fashion terminology."
	}
	return "Respond in English."
}

func promptFor(analysisType AnalysisType, language string) string {
	instruction := languageInstruction(analysisType, language)
	switch analysisType {
	case TypePose:
		return instruction + posePrompt
	case TypeFit:
		return instruction + fitPrompt
	default:
		return instruction + techPackPrompt
	}
}

const posePrompt = ` You are an expert Fashion Pose Director for AI Image Generation.
Your task is to describe the pose in this image with EXTREME PRECISION so that an AI can replicate it EXACTLY without seeing the image.

ANALYZE THESE SPECIFIC POINTS:
1. HEAD & EYES: Exact head tilt and facing direction. Where are eyes looking?
2. SHOULDERS & TORSO: Body angle relative to camera (front, 3/4, side). Leaning forward/back? Shoulders lifted or relaxed?
3. ARMS & HANDS (CRITICAL): Precise position of EACH arm. Elbow bend angles. Hand gestures (in pockets, crossed, holding object, touching face).
4. LEGS & FEET: Stance width. Weight distribution (on which leg?). Knee bends. Crossed legs?
5. MOVEMENT: Is it static or dynamic (walking, running, jumping)?

OUTPUT REQUIREMENTS:
- Create a dense, instructional paragraph starting with "Model is...".
- Use anatomical terms if helpful (e.g. "hands akimbo").
- DISREGARD clothing details. Focus ONLY on biomechanics and posture.

JSON Response Format:
{
    "description": "Full detailed instructional prompt describing the pose."
}`

const techPackPrompt = ` You are a Textile Expert analyzing fabric details for AI image generation.

ANALYZE THIS FABRIC/GARMENT IMAGE:

1. FABRIC TYPE: What is the main material? (Cotton, Linen, Denim, Polyester, Wool, etc.)
2. TEXTURE: How does it feel? (Smooth, Rough, Soft, Crisp, Textured, Puckered, etc.)
3. PATTERN: What pattern does it have? (Solid, Striped, Checkered, Printed, etc.)
   - IF CHECKED/STRIPED: Describe direction, width, colors.
   - IF SOLID: State "Solid color".
4. COLOR: What are the exact colors? Be specific.
5. SURFACE FINISH: How does light interact? (Matte, Shiny, Semi-gloss, etc.)
6. SPECIAL FEATURES: Any unique details? (Visible stitching, logo, buttons, texture variation)
7. CLOSURE TYPE: Does this garment have BUTTONS, ZIPPER, or NO CLOSURE (pullover/open)?

OUTPUT a clean, prompt-ready description.

EXAMPLE OUTPUT (FORMAT REFERENCE ONLY - DO NOT COPY CONTENT):
"Medium-wash indigo denim fabric with subtle cross-hatch texture. Solid blue color with natural fading at seams. Heavyweight cotton twill weave. Matte finish with contrast orange stitching."

JSON Response:
{
    "visualPrompt": "Clean, detailed fabric description as shown in example (ONE paragraph, DESCRIBE ACTUAL IMAGE ONLY)",
    "productName": "Generic English Product Name (NO BRANDS)",
    "fabric": {
        "main": "Primary fabric type",
        "finish": "Surface finish"
    },
    "pattern": "Pattern description",
    "colors": "Color description",
    "closureType": "buttons OR zipper OR none"
}`

const fitPrompt = ` You are an EXPERT Garment Pattern & Fit Analyst. Your analysis will be used to recreate this EXACT fit in AI image generation. BE EXTREMELY PRECISE about silhouette details.

FIRST: Identify the garment type:
- Is it a TOP (shirt, blouse, t-shirt, sweater, jacket, coat)?
- Is it a BOTTOM (pants, jeans, trousers, shorts, skirt)?

FOR TOP GARMENTS (Shirt/Jacket/Coat/Sweater):
1. FIT TYPE: Slim-fit, Regular-fit, Relaxed-fit, Oversized
2. SHOULDER: Natural shoulder, Dropped shoulder, Structured shoulder
3. CHEST/BODY: Fitted, Comfortable, Loose, Boxy
4. SLEEVE LENGTH: Short, 3/4, Long
5. SLEEVE FIT: Fitted, Regular, Wide
6. HEM LENGTH: Cropped, Hip-length, Mid-thigh, Long
7. COLLAR/NECKLINE TYPE: Point collar, Spread collar, Mandarin, V-neck, Crew, etc.
8. CLOSURE: Button-front, Zip, Pullover

FOR BOTTOM GARMENTS (Pants/Jeans/Shorts) - BE EXTREMELY DETAILED:
1. FIT TYPE: Skinny, Slim, Slim-tapered, Regular/Straight, Relaxed, Wide-leg, Bootcut, Mom-fit, Baggy, Oversized-Baggy, Tapered-Leg, High-Waisted, High-Waisted-Baggy, High-Waisted-Tapered
2. RISE: Low-rise, Mid-rise, High-rise, Extreme High-rise (waistband position relative to navel)
3. HEM LENGTH (CRITICAL):
   - Floor-length: Touching the floor, covering shoes.
   - Full-length: Hitting the floor but not pooling.
   - Ankle-length: Precise hit at the ankle bone.
   - Cropped: 2-4 inches above the ankle.
   - Culotte: Mid-calf.
4. THIGH FIT (CRITICAL):
   - Is it TIGHT against the thigh (like leggings)?
   - FITTED (follows shape but not tight)?
   - COMFORTABLE (some room)?
   - LOOSE/RELAXED (visible ease)?
   - VERY LOOSE (baggy at thigh)?
5. KNEE AREA: Does the pant fit snug at knee, or is there room?
6. LEG SHAPE & TAPER (VERY CRITICAL):
   - STRAIGHT: Same width from thigh to ankle, NO taper.
   - TAPERED: Where does taper BEGIN? (From hip? From knee? From mid-calf?)
   - How MUCH taper? (Minor 10%, Moderate 25%, Significant 40%+)
7. LEG OPENING / ANKLE (CRITICAL):
   - VERY NARROW (skinny, less than 14cm)
   - NARROW (slim, 14-16cm)
   - STANDARD (regular, 17-19cm)
   - WIDE (relaxed, 20-22cm)
   - VERY WIDE (wide-leg, 23cm+)
8. FABRIC BEHAVIOR: Does it STACK at the ankle? Puddle on the floor? Bunches at knee? Clean straight lines?
9. OVERALL PROPORTION: How does the garment relate to body proportions in the image?

CRITICAL: If the pants appear WIDER or LOOSER than typical slim-fit jeans, EXPLICITLY STATE THIS. If they are NARROWER or TIGHTER than typical straight-leg, STATE THIS. Use combinations like "High-Waisted Baggy Tapered-Leg".

OUTPUT: Generate a PRECISE, PROMPT-READY fit description. Include ALL relevant details.

Examples:
- Shirt: "Regular-fit cotton shirt with natural shoulders, comfortable body fit, long sleeves with standard cuff. Point collar. Hip-length hem."
- Baggy Pants: "Extreme High-Waisted Baggy Tapered-Leg pants. Loose thigh fit, significant taper beginning from the knee. Narrow leg opening at the ankle. Floor-length hem with slight pooling/stacking."
- Regular Straight: "Mid-rise regular straight-leg jeans. Comfortable thigh fit, NO taper, consistent width from thigh to ankle. Standard leg opening. Full-length hem hitting the top of the shoes."

JSON Response:
{
    "fitDescription": "Complete prompt-ready fit description with ALL silhouette details",
    "garmentType": "Top / Bottom",
    "fitType": "Specific combination (e.g., High-Waisted Baggy Tapered-Leg)",
    "keyFeatures": "Most important silhouette characteristics",
    "silhouetteNotes": "Additional visual notes for AI reproduction - include WHERE garment is tight vs loose",
    "proportionNotes": "How the garment appears relative to body - is it WIDER or NARROWER than typical? Be explicit about lengths."
}`
