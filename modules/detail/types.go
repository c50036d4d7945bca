package detail

import "atelier-studio-server/modules/studio"

// DetailView is the spec-sheet camera angle.
type DetailView string

const (
	ViewFront  DetailView = "front"
	ViewBack   DetailView = "back"
	ViewAngled DetailView = "angled"
)

// DetailRequest is the inbound JSON body for /api/detail. The model and
// innerwear references arrive as dedicated fields rather than bundle slots:
// the spec-sheet flow treats them as styling inputs, not product assets.
type DetailRequest struct {
	ProductName     string            `json:"productName"`
	WorkflowType    string            `json:"workflowType,omitempty"`
	UploadedImages  map[string]string `json:"uploadedImages"`
	Gender          string            `json:"gender,omitempty"`
	DetailView      string            `json:"detailView,omitempty"`
	Resolution      string            `json:"resolution,omitempty"`
	AspectRatio     string            `json:"aspectRatio,omitempty"`
	Tucked          bool              `json:"tucked,omitempty"`
	UpperTucked     bool              `json:"upperTucked,omitempty"`
	InnerwearTucked *bool             `json:"innerwearTucked,omitempty"`
	FrontOpen       bool              `json:"frontOpen,omitempty"`
	InnerwearImage  string            `json:"innerwearImage,omitempty"`
	ModelImage      string            `json:"modelImage,omitempty"`
	Preview         bool              `json:"preview,omitempty"`
}

// DetailResponse is the outbound body for /api/detail.
type DetailResponse struct {
	Success   bool             `json:"success"`
	ImageURL  string           `json:"imageUrl,omitempty"`
	Seed      int64            `json:"seed,omitempty"`
	Previews  []studio.Preview `json:"previews,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorCode string           `json:"errorCode,omitempty"`
}

const (
	defaultResolution  = "4K"
	defaultAspectRatio = "2:3"
)
