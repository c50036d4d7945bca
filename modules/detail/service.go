package detail

import (
	"context"
	"fmt"
	"log"
	"strings"

	"atelier-studio-server/modules/common/fal"
	"atelier-studio-server/modules/common/storage"
	"atelier-studio-server/modules/studio"
)

type Service struct {
	fal     *fal.Client
	storage *storage.Client
}

func NewService() *Service {
	return &Service{
		fal:     fal.NewClient(),
		storage: storage.NewClient(),
	}
}

func validateRequest(req *DetailRequest) error {
	if strings.TrimSpace(req.ProductName) == "" {
		return &studio.ValidationError{Code: studio.ErrCodeInvalidRequest, Message: "productName is required"}
	}
	if req.WorkflowType == "upper" && req.ModelImage == "" {
		return &studio.ValidationError{Code: studio.ErrCodeInvalidRequest, Message: "upper-body spec sheets require a model reference image"}
	}
	return nil
}

// Preview compiles the spec sheet without invoking the provider.
func (s *Service) Preview(req *DetailRequest) ([]studio.Preview, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	bundle, err := studio.NewAssetBundle(req.UploadedImages)
	if err != nil {
		return nil, err
	}

	prompt, negative := BuildPrompt(req)
	return []studio.Preview{{
		Title:    fmt.Sprintf("Detail Spec (%s)", strings.ToUpper(viewOrDefault(req.DetailView))),
		Prompt:   prompt,
		Negative: negative,
		Assets:   SelectAssets(req, bundle),
		Settings: studio.PreviewSettings{
			Resolution:  valueOrDefault(req.Resolution, defaultResolution),
			AspectRatio: valueOrDefault(req.AspectRatio, defaultAspectRatio),
		},
	}}, nil
}

// Generate renders one technical spec sheet.
func (s *Service) Generate(ctx context.Context, req *DetailRequest) (*DetailResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	bundle, err := studio.NewAssetBundle(req.UploadedImages)
	if err != nil {
		return nil, err
	}

	assets := SelectAssets(req, bundle)
	if len(assets) == 0 {
		return nil, &studio.ValidationError{
			Code:    studio.ErrCodeNoAssets,
			Message: "no relevant assets found for this view, upload at least one image (top/bottom/main) matching the selected view",
		}
	}

	prompt, negative := BuildPrompt(req)
	log.Printf("📐 [Detail] Generating %s spec sheet for %q with %d assets", viewOrDefault(req.DetailView), req.ProductName, len(assets))

	resp, err := s.fal.Invoke(ctx, &fal.Request{
		Prompt:         prompt,
		NegativePrompt: negative,
		ImageURLs:      assets,
		AspectRatio:    valueOrDefault(req.AspectRatio, defaultAspectRatio),
		Resolution:     valueOrDefault(req.Resolution, defaultResolution),
		OutputFormat:   "png",
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("provider returned no images")
	}

	imageURL := s.storage.PersistURL(ctx, resp.Images[0].URL, "detail")
	log.Printf("✅ [Detail] %s spec sheet done", viewOrDefault(req.DetailView))
	return &DetailResponse{
		Success:  true,
		ImageURL: imageURL,
		Seed:     resp.Seed,
	}, nil
}

func viewOrDefault(view string) string {
	if view == "" {
		return string(ViewFront)
	}
	return view
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
