package stability

import (
	"net/http"
)

const (
	DefaultURL    = "https://api.stability.ai"
	DefaultEngine = "stable-diffusion-xl-1024-v1-0"

	DefaultWidth  = 1024
	DefaultHeight = 1024
)

type Config struct {
	url string

	token  string
	engine string

	client *http.Client
}

type Option func(*Config)

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func WithEngine(engine string) Option {
	return func(c *Config) {
		c.engine = engine
	}
}

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}
