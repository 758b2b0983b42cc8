package api

import (
	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
)

type RenderRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`

	Width  plugin.Dimension `json:"width,omitempty"`
	Height plugin.Dimension `json:"height,omitempty"`
}

type ModelList struct {
	Object string  `json:"object"` // list
	Models []Model `json:"data"`
}

type Model struct {
	Object string `json:"object"` // model
	ID     string `json:"id"`
}
