// Package generation proxies prompts to external text- and image-generation
// providers.
package generation

import (
	"net/http"
	"time"
)

const defaultImageURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// Options configures a Service.
type Options struct {
	// TextURL is the base URL of the DashScope-compatible chat-completions
	// provider, without the /chat/completions suffix.
	TextURL string
	TextKey string

	// ImageKey enables the Stability image provider. When empty, image
	// generation returns a fixed placeholder instead of calling out.
	ImageKey string

	// Timeout bounds each outbound provider call. Defaults to 60s.
	Timeout time.Duration
}

// Service is a stateless adapter to the generation providers. One Service
// (and its underlying HTTP client) is shared across all requests; it is safe
// for concurrent use.
type Service struct {
	httpClient *http.Client
	textURL    string
	textKey    string
	imageURL   string
	imageKey   string
}

// New creates a Service with a long-lived outbound HTTP client.
func New(opts Options) *Service {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		textURL:    opts.TextURL,
		textKey:    opts.TextKey,
		imageURL:   defaultImageURL,
		imageKey:   opts.ImageKey,
	}
}

// Close releases the outbound client's idle connections.
func (s *Service) Close() {
	s.httpClient.CloseIdleConnections()
}
