package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/wingman-diffusion/pkg/limiter"
	"github.com/adrianliechti/wingman-diffusion/pkg/otel"
	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/openai"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/replicate"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/replicate/flux"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/stability"

	"gopkg.in/yaml.v3"
)

func (c *Config) RegisterRenderer(id string, p provider.Renderer) {
	if c.renderer == nil {
		c.renderer = make(map[string]provider.Renderer)
	}

	if _, ok := c.renderer[id]; !ok {
		c.models = append(c.models, provider.Model{ID: id})
	}

	c.renderer[id] = p
}

func (c *Config) Models() []provider.Model {
	return c.models
}

// Renderer returns the renderer registered as id. An empty id selects the
// first configured renderer.
func (c *Config) Renderer(id string) (provider.Renderer, error) {
	if id == "" && len(c.models) > 0 {
		id = c.models[0].ID
	}

	if c.renderer != nil {
		if r, ok := c.renderer[id]; ok {
			return r, nil
		}
	}

	return nil, errors.New("renderer not found: " + id)
}

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Limit *int `yaml:"limit"`

	Models yaml.Node `yaml:"models"`
}

type modelConfig struct {
	ID string `yaml:"id"`
}

func (c *Config) registerProviders(f *configFile) error {
	for _, p := range f.Providers {
		if p.Models.IsZero() {
			return errors.New("no models configured for provider: " + p.Type)
		}

		var models map[string]modelConfig

		if err := p.Models.Decode(&models); err != nil {
			return err
		}

		// mapping nodes alternate key and value
		for i := 0; i+1 < len(p.Models.Content); i += 2 {
			id := p.Models.Content[i].Value
			model := models[id]

			if model.ID == "" {
				model.ID = id
			}

			r, err := createRenderer(p, model)

			if err != nil {
				return err
			}

			r = limiter.NewRenderer(createLimiter(p.Limit), r)

			if _, ok := r.(otel.Renderer); !ok {
				r = otel.NewRenderer(p.Type, id, r)
			}

			c.RegisterRenderer(id, r)
		}
	}

	return nil
}

func createRenderer(cfg providerConfig, model modelConfig) (provider.Renderer, error) {
	switch strings.ToLower(cfg.Type) {
	case "stability":
		return stabilityRenderer(cfg, model)

	case "openai":
		return openaiRenderer(cfg, model)

	case "replicate":
		return replicateRenderer(cfg, model)

	default:
		return nil, errors.New("invalid renderer type: " + cfg.Type)
	}
}

func stabilityRenderer(cfg providerConfig, model modelConfig) (provider.Renderer, error) {
	if err := plugin.ValidateAPIKey(cfg.Token); err != nil {
		return nil, err
	}

	var options []stability.Option

	if cfg.URL != "" {
		options = append(options, stability.WithURL(cfg.URL))
	}

	options = append(options, stability.WithToken(cfg.Token))

	// model ids without a stability engine name use the default engine
	if strings.HasPrefix(model.ID, "stable-diffusion-") {
		options = append(options, stability.WithEngine(model.ID))
	}

	return stability.NewRenderer(options...)
}

func openaiRenderer(cfg providerConfig, model modelConfig) (provider.Renderer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	return openai.NewRenderer(cfg.URL, model.ID, options...)
}

func replicateRenderer(cfg providerConfig, model modelConfig) (provider.Renderer, error) {
	var options []replicate.Option

	if cfg.URL != "" {
		options = append(options, replicate.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, replicate.WithToken(cfg.Token))
	}

	return flux.NewRenderer(model.ID, options...)
}
