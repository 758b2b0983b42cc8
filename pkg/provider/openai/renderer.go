package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/adrianliechti/wingman-diffusion/pkg/markdown"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Renderer = (*Renderer)(nil)

type Renderer struct {
	*Config
	images openai.ImageService
}

func NewRenderer(url, model string, options ...Option) (*Renderer, error) {
	if model == "" {
		return nil, errors.New("invalid model")
	}

	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Renderer{
		Config: cfg,
		images: openai.NewImageService(cfg.Options()...),
	}, nil
}

func (r *Renderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(r.model),
		Prompt: prompt,
	}

	if options.Width > 0 && options.Height > 0 {
		params.Size = openai.ImageGenerateParamsSize(fmt.Sprintf("%dx%d", options.Width, options.Height))
	}

	image, err := r.images.Generate(ctx, params)

	if err != nil {
		return nil, err
	}

	if len(image.Data) == 0 {
		return nil, errors.New("no image data")
	}

	data, contentType, err := r.getData(ctx, image.Data[0])

	if err != nil {
		return nil, err
	}

	return &provider.Rendering{
		ID:    uuid.NewString(),
		Model: r.model,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func (r *Renderer) getData(ctx context.Context, image openai.Image) ([]byte, string, error) {
	if image.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(image.B64JSON)
		return data, "image/png", err
	}

	if image.URL == "" {
		return nil, "", errors.New("invalid image data")
	}

	if contentType, data, err := markdown.DecodeDataURL(image.URL); err == nil {
		return data, contentType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, image.URL, nil)

	if err != nil {
		return nil, "", err
	}

	resp, err := r.client.Do(req)

	if err != nil {
		return nil, "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New(http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}
