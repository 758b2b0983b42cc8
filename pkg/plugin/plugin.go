package plugin

import (
	"context"
	"log/slog"

	"github.com/adrianliechti/wingman-diffusion/pkg/markdown"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/stability"
)

func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}

	return nil
}

// Generate renders prompt with Stable Diffusion XL and returns the image as
// a markdown image with an embedded data URL.
//
// A missing API key is reported as *ConfigurationError before any request is
// made. Every other failure is a *GenerationError.
func Generate(ctx context.Context, prompt string, settings Settings, options ...stability.Option) (string, error) {
	if err := ValidateAPIKey(settings.APIKey); err != nil {
		return "", err
	}

	options = append([]stability.Option{stability.WithToken(settings.APIKey)}, options...)

	renderer, err := stability.NewRenderer(options...)

	if err != nil {
		return "", &GenerationError{Err: err}
	}

	return Render(ctx, renderer, prompt, &provider.RenderOptions{
		Width:  settings.Width.Int(DefaultSize),
		Height: settings.Height.Int(DefaultSize),
	})
}

// Render runs any renderer and formats its result the same way Generate does.
func Render(ctx context.Context, r provider.Renderer, prompt string, options *provider.RenderOptions) (string, error) {
	rendering, err := r.Render(ctx, prompt, options)

	if err != nil {
		slog.ErrorContext(ctx, "error generating image", "error", err)
		return "", &GenerationError{Err: err}
	}

	alt := markdown.EscapeAlt(prompt)

	return markdown.Image(alt, rendering.ContentType, rendering.Content), nil
}
