package render

type Option func(*Client)

func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}

func WithDescription(description string) Option {
	return func(c *Client) {
		c.description = description
	}
}

// WithSize sets the size used when a call does not ask for one.
func WithSize(width, height int) Option {
	return func(c *Client) {
		c.width = width
		c.height = height
	}
}
