package stability

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/adrianliechti/wingman-diffusion/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Renderer = (*Renderer)(nil)

type Renderer struct {
	*Config
}

func NewRenderer(options ...Option) (*Renderer, error) {
	cfg := &Config{
		url:    DefaultURL,
		engine: DefaultEngine,

		client: http.DefaultClient,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.url == "" {
		return nil, errors.New("invalid url")
	}

	if cfg.engine == "" {
		return nil, errors.New("invalid engine")
	}

	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}

	return &Renderer{
		Config: cfg,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	width := options.Width

	if width == 0 {
		width = DefaultWidth
	}

	height := options.Height

	if height == 0 {
		height = DefaultHeight
	}

	body := GenerationRequest{
		TextPrompts: []TextPrompt{
			{Text: prompt},
		},

		CFGScale: 7,
		Samples:  1,
		Steps:    30,

		Width:  width,
		Height: height,
	}

	data, err := json.Marshal(body)

	if err != nil {
		return nil, err
	}

	u, err := url.JoinPath(r.url, "v1", "generation", r.engine, "text-to-image")

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	var result GenerationResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if len(result.Artifacts) == 0 {
		return nil, ErrNoArtifacts
	}

	artifact := result.Artifacts[0]

	if artifact.FinishReason == FinishReasonError {
		return nil, ErrGenerationFailed
	}

	// CONTENT_FILTERED artifacts carry a blurred image and are returned as is
	content, err := base64.StdEncoding.DecodeString(artifact.Base64)

	if err != nil {
		return nil, err
	}

	return &provider.Rendering{
		ID:    uuid.NewString(),
		Model: r.engine,

		Content:     content,
		ContentType: "image/png",
	}, nil
}
