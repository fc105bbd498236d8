package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/synthra/synthra-api/internal/domain"
)

// PlaceholderImage is served when no image provider key is configured: an
// inline SVG telling the user how to enable real generation.
const PlaceholderImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0nNDAwJyBoZWlnaHQ9JzIwMCcgeG1sbnM9J2h0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnJz48cmVjdCB3aWR0aD0nMTAwJScgaGVpZ2h0PScxMDAlJyBmaWxsPScjZWVlJy8+PHRleHQgeD0nMjAnIHk9JzcwJyBmb250LXNpemU9JzIwJyBmaWxsPScjMzMzJz5JbWFnZSBlbmFibGVkIHdoZW4gU3RhYmlsaXR5IEFLIGlzIHNldDwvdGV4dD48L3N2Zz4="

type imageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type textPrompt struct {
	Text string `json:"text"`
}

type imageResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

// GenerateImage generates an image through the Stability provider and returns
// it as an inline data URI. Without a configured key it degrades gracefully
// to the fixed placeholder and never fails.
func (s *Service) GenerateImage(ctx context.Context, prompt string, genCtx *domain.GenerationContext) (string, error) {
	if s.imageKey == "" {
		return PlaceholderImage, nil
	}

	if genCtx != nil {
		prompt = fmt.Sprintf("%s\nStyle: Professional, branded for %s\nBrand colors: %s",
			prompt, genCtx.CompanyName, genCtx.BrandColors)
	}

	body, err := json.Marshal(imageRequest{
		TextPrompts: []textPrompt{{Text: prompt}},
		CfgScale:    7,
		Height:      1024,
		Width:       1024,
		Samples:     1,
		Steps:       30,
	})
	if err != nil {
		return "", &GenerationError{Stage: "image generation", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.imageURL, bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Stage: "image generation", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+s.imageKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := s.doJSONRequest(req)
	if err != nil {
		return "", &GenerationError{Stage: "image generation", Err: err}
	}

	var resp imageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &GenerationError{Stage: "image generation", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(resp.Artifacts) == 0 {
		return "", &GenerationError{Stage: "image generation", Err: fmt.Errorf("no artifacts in response")}
	}

	return "data:image/png;base64," + resp.Artifacts[0].Base64, nil
}
