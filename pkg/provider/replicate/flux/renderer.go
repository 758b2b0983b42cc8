package flux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/replicate"

	"github.com/google/uuid"
)

var _ provider.Renderer = (*Renderer)(nil)

type Renderer struct {
	*replicate.Client
}

const (
	FluxSchnell string = "black-forest-labs/flux-schnell"
	FluxDev     string = "black-forest-labs/flux-dev"
	FluxPro     string = "black-forest-labs/flux-pro"

	FluxPro11      string = "black-forest-labs/flux-1.1-pro"
	FluxProUltra11 string = "black-forest-labs/flux-1.1-pro-ultra"
)

var SupportedModels = []string{
	FluxPro,
	FluxDev,
	FluxSchnell,

	FluxPro11,
	FluxProUltra11,
}

// aspect ratios accepted by all flux text-to-image models
var aspectRatios = []string{
	"1:1", "16:9", "21:9", "3:2", "2:3", "4:5", "5:4", "3:4", "4:3", "9:16", "9:21",
}

func NewRenderer(model string, options ...replicate.Option) (*Renderer, error) {
	if !slices.Contains(SupportedModels, model) {
		return nil, errors.New("unsupported model")
	}

	client, err := replicate.New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Renderer{
		Client: client,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	input := r.convertInput(prompt, options)

	resp, err := r.Run(ctx, input)

	if err != nil {
		return nil, err
	}

	return r.convertImage(resp)
}

func (r *Renderer) convertInput(prompt string, options *provider.RenderOptions) replicate.PredictionInput {
	input := map[string]any{
		"prompt": prompt,

		"aspect_ratio":  AspectRatio(options.Width, options.Height),
		"output_format": "png",
	}

	switch r.Model() {
	case FluxSchnell, FluxDev:
		// https://replicate.com/black-forest-labs/flux-schnell/api/schema#input-schema
		input["disable_safety_checker"] = true

	default:
		// https://replicate.com/black-forest-labs/flux-1.1-pro/api/schema#input-schema
		input["safety_tolerance"] = 6
	}

	return input
}

func (r *Renderer) convertImage(output replicate.PredictionOutput) (*provider.Rendering, error) {
	file, ok := output.(*replicate.FileOutput)

	if !ok {
		return nil, errors.New("unsupported output")
	}

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	return &provider.Rendering{
		ID:    uuid.NewString(),
		Model: r.Model(),

		Content:     data,
		ContentType: "image/png",
	}, nil
}

// AspectRatio picks the supported aspect ratio closest to width:height.
// Without a size it falls back to 3:2.
func AspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return "3:2"
	}

	target := float64(width) / float64(height)

	result := aspectRatios[0]
	best := math.Inf(1)

	for _, ratio := range aspectRatios {
		var w, h float64

		if _, err := fmt.Sscanf(ratio, "%f:%f", &w, &h); err != nil {
			continue
		}

		if d := math.Abs(math.Log(w / h / target)); d < best {
			best = d
			result = ratio
		}
	}

	return result
}
