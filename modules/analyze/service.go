package analyze

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"atelier-studio-server/modules/common/config"
)

// Analyses are cached by image digest: the same fabric shot is analyzed once
// per upload session, not once per generated view.
const cacheTTL = 15 * time.Minute

type Service struct {
	genaiClient *genai.Client
	cache       *cache.Cache
}

func NewService() *Service {
	cfg := config.GetConfig()
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️ [Analyze] GEMINI_API_KEY not set, analysis disabled")
		return nil
	}

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ [Analyze] Failed to create Genai client: %v", err)
		return nil
	}

	log.Println("✅ [Analyze] Service initialized")
	return &Service{
		genaiClient: genaiClient,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
	}
}

// modelsFor lists the models to try in order. Fashion analysis wants the
// strongest vision model first; quota or availability failures fall through.
func modelsFor(analysisType AnalysisType) []string {
	primary := config.GetConfig().GeminiModel
	switch analysisType {
	case TypeTechPack, TypeFit, TypePose:
		return dedupe([]string{"gemini-1.5-pro", primary, "gemini-2.0-flash", "gemini-2.0-flash-exp"})
	default:
		return dedupe([]string{primary, "gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"})
	}
}

func dedupe(models []string) []string {
	seen := make(map[string]bool, len(models))
	out := models[:0]
	for _, m := range models {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// decodeImage splits a data URI into payload and mime type, defaulting to
// PNG for raw base64 input.
func decodeImage(image string) ([]byte, string, error) {
	mimeType := "image/png"
	payload := image

	if idx := strings.Index(image, ","); idx >= 0 {
		header := image[:idx]
		payload = image[idx+1:]
		if start := strings.Index(header, ":"); start >= 0 {
			if end := strings.Index(header, ";"); end > start {
				mimeType = header[start+1 : end]
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, mimeType, nil
}

func cacheKey(req *AnalyzeRequest) string {
	digest := sha256.Sum256([]byte(req.Image))
	return hex.EncodeToString(digest[:]) + ":" + req.Type + ":" + req.Language
}

// Analyze runs the requested analysis against the image, walking the model
// fallback list until one answers with parseable output.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	analysisType := AnalysisType(req.Type)
	if analysisType == "" {
		analysisType = TypeTechPack
	}

	key := cacheKey(req)
	if cached, found := s.cache.Get(key); found {
		resp := cached.(*AnalyzeResponse)
		return &AnalyzeResponse{
			Status:    resp.Status,
			Data:      resp.Data,
			ModelUsed: resp.ModelUsed,
			Cached:    true,
		}, nil
	}

	imageData, mimeType, err := decodeImage(req.Image)
	if err != nil {
		return nil, err
	}

	prompt := promptFor(analysisType, req.Language)
	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(imageData, mimeType),
		},
	}

	// Safety filters off: studio fashion imagery trips them constantly.
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}

	var attemptErrors []string
	for _, model := range modelsFor(analysisType) {
		result, err := s.genaiClient.Models.GenerateContent(ctx, model, []*genai.Content{content}, genConfig)
		if err != nil {
			log.Printf("⚠️ [Analyze] Model %s failed: %v", model, err)
			attemptErrors = append(attemptErrors, err.Error())
			continue
		}

		data, err := parseAnalysis(analysisType, result.Text())
		if err != nil {
			log.Printf("⚠️ [Analyze] Model %s returned unparseable output: %v", model, err)
			attemptErrors = append(attemptErrors, err.Error())
			continue
		}

		resp := &AnalyzeResponse{
			Status:    "success",
			Data:      data,
			ModelUsed: model,
		}
		s.cache.Set(key, resp, cache.DefaultExpiration)
		log.Printf("✅ [Analyze] %s analysis done via %s", analysisType, model)
		return resp, nil
	}

	return nil, fmt.Errorf("analysis failed: %s", strings.Join(attemptErrors, " | "))
}

// parseAnalysis strips markdown fences and validates the model output. Pose
// answers that are not valid JSON get wrapped as a plain description.
func parseAnalysis(analysisType AnalysisType, text string) (json.RawMessage, error) {
	text = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", ""))
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}
	if analysisType == TypePose {
		wrapped, err := json.Marshal(map[string]string{"description": text})
		if err != nil {
			return nil, err
		}
		return wrapped, nil
	}
	return nil, fmt.Errorf("response is not valid JSON")
}
