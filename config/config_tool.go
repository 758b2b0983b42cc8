package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/wingman-diffusion/pkg/otel"
	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/tool"
	"github.com/adrianliechti/wingman-diffusion/pkg/tool/render"
)

func (c *Config) RegisterTool(id string, p tool.Provider) {
	if c.tools == nil {
		c.tools = make(map[string]tool.Provider)
	}

	if _, ok := c.tools[id]; !ok {
		c.toolOrder = append(c.toolOrder, id)
	}

	c.tools[id] = p
}

func (c *Config) Tools() []tool.Provider {
	var tools []tool.Provider

	for _, id := range c.toolOrder {
		tools = append(tools, c.tools[id])
	}

	return tools
}

func (c *Config) Tool(id string) (tool.Provider, error) {
	if c.tools != nil {
		if p, ok := c.tools[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("tool not found: " + id)
}

type toolConfig struct {
	Type string `yaml:"type"`

	Model string `yaml:"model"`

	Description string `yaml:"description"`

	Width  plugin.Dimension `yaml:"width"`
	Height plugin.Dimension `yaml:"height"`
}

type toolContext struct {
	Renderer provider.Renderer
}

func (c *Config) registerTools(f *configFile) error {
	if f.Tools.IsZero() {
		return c.registerDefaultTool()
	}

	var configs map[string]toolConfig

	if err := f.Tools.Decode(&configs); err != nil {
		return err
	}

	for i := 0; i+1 < len(f.Tools.Content); i += 2 {
		id := f.Tools.Content[i].Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		context := toolContext{}

		if p, err := c.Renderer(config.Model); err == nil {
			context.Renderer = p
		}

		t, err := createTool(id, config, context)

		if err != nil {
			return err
		}

		if _, ok := t.(otel.Tool); !ok {
			t = otel.NewTool(config.Type, t)
		}

		c.RegisterTool(id, t)
	}

	return nil
}

// registerDefaultTool exposes the first renderer under the default tool
// name when no tools are configured.
func (c *Config) registerDefaultTool() error {
	r, err := c.Renderer("")

	if err != nil {
		return nil
	}

	t, err := render.New(r)

	if err != nil {
		return err
	}

	c.RegisterTool(render.DefaultName, otel.NewTool("render", t))

	return nil
}

func createTool(id string, cfg toolConfig, context toolContext) (tool.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "render":
		return renderTool(id, cfg, context)

	default:
		return nil, errors.New("invalid tool type: " + cfg.Type)
	}
}

func renderTool(id string, cfg toolConfig, context toolContext) (tool.Provider, error) {
	if context.Renderer == nil {
		return nil, errors.New("render tool " + id + ": renderer not found: " + cfg.Model)
	}

	options := []render.Option{
		render.WithName(id),
		render.WithSize(cfg.Width.Int(plugin.DefaultSize), cfg.Height.Int(plugin.DefaultSize)),
	}

	if cfg.Description != "" {
		options = append(options, render.WithDescription(cfg.Description))
	}

	return render.New(context.Renderer, options...)
}
