package analyze

import "encoding/json"

// AnalysisType selects which expert prompt runs against the image.
type AnalysisType string

const (
	TypeTechPack AnalysisType = "techPack"
	TypeFit      AnalysisType = "fit"
	TypePose     AnalysisType = "pose"
)

// AnalyzeRequest is the inbound JSON body for /api/analyze. Image is a data
// URI or raw base64 payload.
type AnalyzeRequest struct {
	Image    string `json:"image"`
	Language string `json:"language,omitempty"`
	Type     string `json:"type,omitempty"` // defaults to techPack
}

// AnalyzeResponse carries the parsed analysis plus which model produced it.
type AnalyzeResponse struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data,omitempty"`
	ModelUsed string          `json:"modelUsed,omitempty"`
	Cached    bool            `json:"cached,omitempty"`
	Error     string          `json:"error,omitempty"`
}
