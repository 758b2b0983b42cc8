package render

import (
	"context"
	"errors"

	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const (
	DefaultName        = "image_generation_via_stable_diffusion"
	DefaultDescription = "Generate an image from a detailed text prompt. Returns the image as markdown that can be shown to the user as is."
)

type Client struct {
	provider provider.Renderer

	name        string
	description string

	width  int
	height int
}

func New(provider provider.Renderer, options ...Option) (*Client, error) {
	if provider == nil {
		return nil, errors.New("missing renderer")
	}

	c := &Client{
		provider: provider,

		name:        DefaultName,
		description: DefaultDescription,

		width:  plugin.DefaultSize,
		height: plugin.DefaultSize,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        c.name,
			Description: c.description,

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "detailed text description of the image to generate. must be english.",
					},

					"width": map[string]any{
						"type":        []string{"integer", "string"},
						"description": "image width in pixels",
					},

					"height": map[string]any{
						"type":        []string{"integer", "string"},
						"description": "image height in pixels",
					},
				},

				"required": []string{"prompt"},
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != c.name {
		return nil, tool.ErrInvalidTool
	}

	prompt, ok := parameters["prompt"].(string)

	if !ok || prompt == "" {
		return nil, errors.New("missing prompt parameter")
	}

	options := &provider.RenderOptions{
		Width:  plugin.DimensionFrom(parameters["width"]).Int(c.width),
		Height: plugin.DimensionFrom(parameters["height"]).Int(c.height),
	}

	return plugin.Render(ctx, c.provider, prompt, options)
}
