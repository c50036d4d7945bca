package studio

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"

	"golang.org/x/sync/errgroup"

	"atelier-studio-server/modules/common/fal"
	"atelier-studio-server/modules/common/storage"
)

const (
	defaultResolution  = "1K"
	defaultAspectRatio = "3:4"
	outputFormat       = "png"
)

// ViewResult is the per-view outcome of a batch. Failed views report an error
// alongside successful siblings; one bad angle never discards the others.
type ViewResult struct {
	View      View   `json:"view"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// GenerateResponse is the outbound body for /api/generate. Status is
// "preview" or "completed"; failures never reach this envelope, they travel
// the error path and come back as `{error}` with a non-2xx status.
type GenerateResponse struct {
	Status   string       `json:"status"`
	Images   []string     `json:"images,omitempty"`
	Seed     int64        `json:"seed,omitempty"`
	Results  []ViewResult `json:"results,omitempty"`
	Previews []Preview    `json:"previews,omitempty"`
}

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

// compileRequest resolves the raw request into workflow, options, and bundle.
func compileRequest(req *GenerateRequest) (WorkflowType, StylingOptions, AssetBundle, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return "", StylingOptions{}, nil, &ValidationError{Code: ErrCodeInvalidRequest, Message: "productName is required"}
	}

	bundle, err := NewAssetBundle(req.UploadedImages)
	if err != nil {
		return "", StylingOptions{}, nil, err
	}

	workflow := Classify(req.ProductName, WorkflowType(req.WorkflowType))

	innerTucked := true
	if req.InnerwearTucked != nil {
		innerTucked = *req.InnerwearTucked
	}

	opts := StylingOptions{
		ProductName:         req.ProductName,
		Gender:              req.Gender,
		PoseFocus:           req.PoseFocus,
		ButtonsOpen:         req.ButtonsOpen,
		Tucked:              req.Tucked,
		InnerwearTucked:     innerTucked,
		HairBehindShoulders: req.HairBehindShoulders,
		DetailView:          View(req.DetailView),
		ProductDescription:  req.ProductDescription,
		FitDescription:      req.FitDescription,
		PoseDescription:     req.PoseDescription,
		PoseStickman:        req.PoseStickman,
		CustomPrompt:        req.CustomPrompt,
		EditedPrompt:        req.EditedPrompt,
	}
	return workflow, opts, bundle, nil
}

// compileView builds the full spec for one view.
func compileView(view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle) (*CompiledSpec, error) {
	assets, err := SelectAssets(view, workflow, opts, bundle)
	if err != nil {
		return nil, err
	}
	prompt, negative := CompilePrompt(view, workflow, opts, bundle)
	return &CompiledSpec{
		Prompt:         prompt,
		NegativePrompt: negative,
		Assets:         assets,
	}, nil
}

// requestViews resolves which views this request generates.
func requestViews(req *GenerateRequest) []View {
	if req.TargetView != "" {
		return []View{View(req.TargetView)}
	}
	if req.IsAngles {
		return TechnicalViews
	}
	return []View{ViewStyling}
}

// Previews compiles the prompt and asset list for every view this request
// would generate, without touching the provider. What preview shows is
// byte-identical to what generation sends.
func (s *Service) Previews(req *GenerateRequest) ([]Preview, error) {
	workflow, opts, bundle, err := compileRequest(req)
	if err != nil {
		return nil, err
	}

	views := requestViews(req)
	previews := make([]Preview, 0, len(views))
	for _, view := range views {
		spec, err := compileView(view, workflow, opts, bundle)
		if err != nil {
			return nil, err
		}
		previews = append(previews, Preview{
			Title:    previewTitle(view),
			Prompt:   spec.Prompt,
			Negative: spec.NegativePrompt,
			Assets:   spec.Assets,
			Settings: PreviewSettings{
				Resolution:  resolutionOrDefault(req.Resolution),
				AspectRatio: aspectOrDefault(req.AspectRatio),
			},
		})
	}
	return previews, nil
}

func previewTitle(view View) string {
	switch view {
	case ViewFront:
		return "Technical Front View"
	case ViewSide:
		return "Technical Side View"
	case ViewBack:
		return "Technical Back View"
	default:
		return "Styling Shot"
	}
}

// Generate runs the request end to end. Styling requests produce one image;
// angle batches fan out the three technical views concurrently under one
// shared seed so the model identity stays consistent.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	return s.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress is Generate with a per-view completion callback, used
// by the async worker to stream batch progress. The callback may be invoked
// from concurrent goroutines.
func (s *Service) GenerateWithProgress(ctx context.Context, req *GenerateRequest, progress func(ViewResult)) (*GenerateResponse, error) {
	workflow, opts, bundle, err := compileRequest(req)
	if err != nil {
		return nil, err
	}

	views := requestViews(req)
	log.Printf("🎨 [Studio] Generating %d view(s) for %q (workflow=%s)", len(views), req.ProductName, workflow)

	// One seed per request, drawn before any view is dispatched, so every
	// angle in a batch renders the same model. The range matches the
	// provider's seed space so separate requests rarely collide.
	requestSeed := rand.Int63n(1_000_000_000)

	if len(views) == 1 {
		result, err := s.generateView(ctx, views[0], workflow, opts, bundle, req, requestSeed)
		if progress != nil {
			progress(result)
		}
		if err != nil {
			return nil, err
		}
		return &GenerateResponse{
			Status:  "completed",
			Images:  []string{result.ImageURL},
			Seed:    result.Seed,
			Results: []ViewResult{result},
		}, nil
	}

	results := make([]ViewResult, len(views))
	viewErrs := make([]error, len(views))
	g, gctx := errgroup.WithContext(ctx)
	for i, view := range views {
		g.Go(func() error {
			// Failures stay in the per-view result; returning an error here
			// would cancel the sibling views.
			results[i], viewErrs[i] = s.generateView(gctx, view, workflow, opts, bundle, req, requestSeed)
			if progress != nil {
				progress(results[i])
			}
			return nil
		})
	}
	g.Wait()

	images := make([]string, 0, len(views))
	for _, r := range results {
		if r.Error == "" {
			images = append(images, r.ImageURL)
		}
	}
	// Partial success is success; only a batch with zero surviving views is
	// an error.
	if len(images) == 0 {
		for _, verr := range viewErrs {
			if verr != nil {
				return nil, verr
			}
		}
		return nil, &fal.ProviderError{StatusCode: 502, Message: "all views failed"}
	}

	return &GenerateResponse{
		Status:  "completed",
		Images:  images,
		Seed:    requestSeed,
		Results: results,
	}, nil
}

// generateView compiles and invokes one view, persisting the result image.
// The error is also mirrored into the ViewResult so batch siblings can keep
// their own outcomes.
func (s *Service) generateView(ctx context.Context, view View, workflow WorkflowType, opts StylingOptions, bundle AssetBundle, req *GenerateRequest, seed int64) (ViewResult, error) {
	result := ViewResult{View: view, Seed: seed}
	fail := func(err error) (ViewResult, error) {
		result.Error = err.Error()
		result.ErrorCode = errorCode(err)
		return result, err
	}

	spec, err := compileView(view, workflow, opts, bundle)
	if err != nil {
		return fail(err)
	}

	resp, err := s.fal.Invoke(ctx, &fal.Request{
		Prompt:         spec.Prompt,
		NegativePrompt: spec.NegativePrompt,
		ImageURLs:      spec.Assets,
		AspectRatio:    aspectOrDefault(req.AspectRatio),
		Resolution:     resolutionOrDefault(req.Resolution),
		Seed:           &seed,
		OutputFormat:   outputFormat,
	})
	if err != nil {
		log.Printf("❌ [Studio] %s view failed: %v", view, err)
		return fail(err)
	}
	if len(resp.Images) == 0 {
		return fail(&fal.ProviderError{StatusCode: 502, Message: "provider returned no images"})
	}

	result.ImageURL = s.storage.PersistURL(ctx, resp.Images[0].URL, "studio")
	if resp.Seed != 0 {
		result.Seed = resp.Seed
	}
	log.Printf("✅ [Studio] %s view done (seed=%d)", view, result.Seed)
	return result, nil
}

// errorCode maps pipeline errors onto the response error taxonomy.
func errorCode(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Code != "" {
			return valErr.Code
		}
		return ErrCodeInvalidRequest
	}
	if errors.Is(err, fal.ErrMissingKey) {
		return ErrCodeConfiguration
	}
	var provErr *fal.ProviderError
	if errors.As(err, &provErr) {
		return ErrCodeProviderError
	}
	return ErrCodeInternalError
}

func resolutionOrDefault(res string) string {
	if res == "" {
		return defaultResolution
	}
	return res
}

func aspectOrDefault(aspect string) string {
	if aspect == "" {
		return defaultAspectRatio
	}
	return aspect
}
