package plugin

var (
	ErrMissingAPIKey = &ConfigurationError{
		Message: "Please set a Stable Diffusion API Key in the plugin settings.",
	}
)

// ConfigurationError reports unusable plugin settings. Its message is meant
// to be shown to the user as is.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// GenerationError wraps every failure that happens once the settings are valid.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "Error: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
