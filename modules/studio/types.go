package studio

import "fmt"

// WorkflowType classifies the garment category and drives which prompt and
// asset rules apply.
type WorkflowType string

const (
	WorkflowUpper WorkflowType = "upper"
	WorkflowLower WorkflowType = "lower"
	WorkflowDress WorkflowType = "dress"
	WorkflowSet   WorkflowType = "set"
)

// View is the camera framing being generated: the styling hero shot or one of
// the technical angle shots.
type View string

const (
	ViewStyling View = "styling"
	ViewFront   View = "front"
	ViewSide    View = "side"
	ViewBack    View = "back"
)

// TechnicalViews are generated together in a three-angle batch, sharing one
// request seed so the model's identity stays consistent across angles.
var TechnicalViews = []View{ViewFront, ViewSide, ViewBack}

// AssetSlot identifies the semantic role an uploaded image plays. The set is
// closed: unknown slot keys are rejected at the boundary instead of being
// silently ignored.
type AssetSlot string

const (
	SlotModel       AssetSlot = "model"
	SlotMainProduct AssetSlot = "main_product"
	SlotTopFront    AssetSlot = "top_front"
	SlotTopBack     AssetSlot = "top_back"
	SlotBottomFront AssetSlot = "bottom_front"
	SlotBottomBack  AssetSlot = "bottom_back"
	SlotDressFront  AssetSlot = "dress_front"
	SlotJacket      AssetSlot = "jacket"
	SlotBackRef     AssetSlot = "back_ref"
	SlotInnerWear   AssetSlot = "inner_wear"
	SlotBackground  AssetSlot = "background"
	SlotShoes       AssetSlot = "shoes"
	SlotBelt        AssetSlot = "belt"
	SlotHat         AssetSlot = "hat"
	SlotBag         AssetSlot = "bag"
	SlotGlasses     AssetSlot = "glasses"
	SlotJewelry     AssetSlot = "jewelry"
	SlotAccessories AssetSlot = "accessories"
	SlotFitPattern  AssetSlot = "fit_pattern"
	SlotDetail1     AssetSlot = "detail_1"
	SlotDetail2     AssetSlot = "detail_2"
	SlotDetail3     AssetSlot = "detail_3"
)

var validSlots = map[AssetSlot]bool{
	SlotModel: true, SlotMainProduct: true,
	SlotTopFront: true, SlotTopBack: true,
	SlotBottomFront: true, SlotBottomBack: true,
	SlotDressFront: true, SlotJacket: true, SlotBackRef: true,
	SlotInnerWear: true, SlotBackground: true,
	SlotShoes: true, SlotBelt: true, SlotHat: true, SlotBag: true,
	SlotGlasses: true, SlotJewelry: true, SlotAccessories: true,
	SlotFitPattern: true,
	SlotDetail1:    true, SlotDetail2: true, SlotDetail3: true,
}

// AssetBundle maps slots to image references (URL or data URI). Absent and
// empty entries both mean "not provided". The bundle is read-only input:
// nothing in the pipeline mutates it.
type AssetBundle map[AssetSlot]string

// NewAssetBundle validates raw client input against the closed slot set.
// Empty-string values are dropped rather than kept as sentinels.
func NewAssetBundle(raw map[string]string) (AssetBundle, error) {
	bundle := make(AssetBundle, len(raw))
	for key, value := range raw {
		slot := AssetSlot(key)
		if !validSlots[slot] {
			return nil, &ValidationError{Code: ErrCodeInvalidRequest, Message: fmt.Sprintf("unknown asset slot %q", key)}
		}
		if value == "" {
			continue
		}
		bundle[slot] = value
	}
	return bundle, nil
}

// Has reports whether the slot carries an image.
func (b AssetBundle) Has(slot AssetSlot) bool {
	return b[slot] != ""
}

// PoseFocus values for the styling shot framing.
const (
	FocusFull    = "full"
	FocusUpper   = "upper"
	FocusLower   = "lower"
	FocusCloseup = "closeup"
	FocusDetail  = "detail"
)

// StylingOptions is the flat flag record the compiler and selector consume.
// Tuck and open flags are only meaningful for specific workflow types; outside
// those contexts they are ignored, never an error.
type StylingOptions struct {
	ProductName         string
	Gender              string // male | female | unspecified
	PoseFocus           string
	ButtonsOpen         bool
	Tucked              bool
	InnerwearTucked     bool
	HairBehindShoulders bool
	DetailView          View // front | back | angled, for PoseFocus == detail

	// Upstream analysis output, injected verbatim into the prompt.
	ProductDescription string
	FitDescription     string
	PoseDescription    string
	PoseStickman       string

	// User prompt text. CustomPrompt and EditedPrompt are additive suffixes,
	// never replacements of the compiled text.
	CustomPrompt string
	EditedPrompt string
}

// CompiledSpec is the unit handed to the generation invoker: prompt,
// negative prompt, and the ordered reference-image list. Immutable once built.
type CompiledSpec struct {
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negativePrompt"`
	Assets         []string `json:"assets"`
}

// ValidationError is a request-validation failure, reported to the caller
// before any provider call (HTTP 400-class).
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GenerateRequest is the inbound JSON body for /api/generate.
type GenerateRequest struct {
	ProductName         string            `json:"productName"`
	WorkflowType        string            `json:"workflowType,omitempty"`
	UploadedImages      map[string]string `json:"uploadedImages"`
	Gender              string            `json:"gender,omitempty"`
	CustomPrompt        string            `json:"prompt,omitempty"`
	PoseFocus           string            `json:"poseFocus,omitempty"`
	Resolution          string            `json:"resolution,omitempty"`
	AspectRatio         string            `json:"aspectRatio,omitempty"`
	IsAngles            bool              `json:"isAngles,omitempty"`
	Preview             bool              `json:"preview,omitempty"`
	Async               bool              `json:"async,omitempty"`
	PoseDescription     string            `json:"poseDescription,omitempty"`
	ButtonsOpen         bool              `json:"buttonsOpen,omitempty"`
	Tucked              bool              `json:"tucked,omitempty"`
	InnerwearTucked     *bool             `json:"innerwearTucked,omitempty"`
	ProductDescription  string            `json:"productDescription,omitempty"`
	FitDescription      string            `json:"fitDescription,omitempty"`
	PoseStickman        string            `json:"poseStickman,omitempty"`
	DetailView          string            `json:"detailView,omitempty"`
	EditedPrompt        string            `json:"editedPrompt,omitempty"`
	TargetView          string            `json:"targetView,omitempty"`
	HairBehindShoulders bool              `json:"hairBehindShoulders,omitempty"`
}

// Preview describes one compiled spec without invoking the provider.
type Preview struct {
	Title    string          `json:"title"`
	Prompt   string          `json:"prompt"`
	Negative string          `json:"negativePrompt"`
	Assets   []string        `json:"assets"`
	Settings PreviewSettings `json:"settings"`
}

type PreviewSettings struct {
	Resolution  string `json:"resolution"`
	AspectRatio string `json:"aspect_ratio"`
}

// Error codes surfaced in generate responses.
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeNoAssets       = "NO_ASSETS"
	ErrCodeConfiguration  = "CONFIGURATION_ERROR"
	ErrCodeProviderError  = "PROVIDER_ERROR"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
