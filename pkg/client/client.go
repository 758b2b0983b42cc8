package client

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

type Client struct {
	Models     ModelService
	Renderings RenderingService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Models:     NewModelService(opts...),
		Renderings: NewRenderingService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.URL = strings.TrimRight(c.URL, "/")

	return c
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(resp.Status)
	}

	return errors.New(strings.TrimSpace(string(data)))
}
