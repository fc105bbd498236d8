package generation

import "fmt"

// ConfigError signals that a required provider credential or endpoint is
// absent. Handlers surface it as 503.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s not configured", e.Missing)
}

// ResponseFormatError signals that a provider returned a response in neither
// of the recognized shapes.
type ResponseFormatError struct {
	Detail string
}

func (e *ResponseFormatError) Error() string {
	if e.Detail == "" {
		return "unexpected API response format"
	}
	return fmt.Sprintf("unexpected API response format: %s", e.Detail)
}

// GenerationError wraps any provider-call failure (network, non-2xx,
// malformed body) with a human-readable stage message.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
