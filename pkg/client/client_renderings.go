package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type RenderingService struct {
	Options []RequestOption
}

func NewRenderingService(opts ...RequestOption) RenderingService {
	return RenderingService{
		Options: opts,
	}
}

type RenderingRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`

	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// New renders a prompt on the server and returns the markdown image.
func (r *RenderingService) New(ctx context.Context, input RenderingRequest, opts ...RequestOption) (string, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	body, err := json.Marshal(input)

	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/v1/render", bytes.NewReader(body))

	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return "", err
	}

	return string(data), nil
}
