package provider

import (
	"context"
)

type Renderer interface {
	Render(ctx context.Context, prompt string, options *RenderOptions) (*Rendering, error)
}

type RenderOptions struct {
	// Width and Height in pixels. Zero leaves the choice to the renderer.
	Width  int
	Height int
}

type Rendering struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
