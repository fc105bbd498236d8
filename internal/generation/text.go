package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/synthra/synthra-api/internal/domain"
)

// systemMessages selects the assistant persona by content type. Unknown types
// fall back to a generic assistant.
var systemMessages = map[string]string{
	"Marketing Copy": "You are a professional marketing copywriter. Create compelling marketing content that highlights key features and benefits.",
	"Social":         "You are a social media expert. Create engaging social media posts with appropriate hashtags and calls to action.",
	"Product":        "You are a product description specialist. Create detailed, compelling product descriptions that highlight features and benefits.",
	"Email":          "You are an email marketing expert. Create persuasive marketing emails that drive engagement and conversions.",
	"Ad":             "You are an advertising copywriter. Create compelling ad copy that drives action and conversions.",
}

const defaultSystemMessage = "You are a helpful AI assistant."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse covers both recognized provider shapes: the OpenAI-compatible
// top-level choices and the DashScope-native nested output.choices. Pointers
// distinguish a missing field from an empty one so partial shapes are
// rejected instead of silently yielding empty strings.
type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Output *struct {
		Choices []struct {
			Message *struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
}

// GenerateText generates text content through the configured chat-completions
// provider. The content type selects a system message; an optional context
// prepends a company block to the prompt.
func (s *Service) GenerateText(ctx context.Context, prompt, contentType string, genCtx *domain.GenerationContext) (string, error) {
	if s.textKey == "" {
		return "", &ConfigError{Missing: "DashScope API key"}
	}
	if s.textURL == "" {
		return "", &ConfigError{Missing: "DashScope API URL"}
	}

	system, ok := systemMessages[contentType]
	if !ok {
		system = defaultSystemMessage
	}

	body, err := json.Marshal(chatRequest{
		Model: "qwen-max",
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: promptWithContext(prompt, genCtx)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", &GenerationError{Stage: "text generation", Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := strings.TrimRight(s.textURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Stage: "text generation", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+s.textKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, err := s.doJSONRequest(req)
	if err != nil {
		return "", &GenerationError{Stage: "text generation", Err: err}
	}

	return contentFromResponse(raw)
}

// promptWithContext prepends the company context block when present.
func promptWithContext(prompt string, genCtx *domain.GenerationContext) string {
	if genCtx == nil {
		return prompt
	}

	name := genCtx.CompanyName
	if name == "" {
		name = "Unknown"
	}
	tone := genCtx.Tone
	if tone == "" {
		tone = "Professional"
	}

	return fmt.Sprintf(`Company Context:
Name: %s
Description: %s
Tone: %s

Task: %s`, name, genCtx.CompanyDescription, tone, prompt)
}

// contentFromResponse attempts the OpenAI-compatible shape first, then the
// DashScope-native shape, and rejects anything else.
func contentFromResponse(raw []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &ResponseFormatError{Detail: err.Error()}
	}

	if len(resp.Choices) > 0 {
		msg := resp.Choices[0].Message
		if msg == nil || msg.Content == nil {
			return "", &ResponseFormatError{Detail: "choices entry missing message content"}
		}
		return *msg.Content, nil
	}

	if resp.Output != nil && len(resp.Output.Choices) > 0 {
		msg := resp.Output.Choices[0].Message
		if msg == nil || msg.Content == nil {
			return "", &ResponseFormatError{Detail: "output.choices entry missing message content"}
		}
		return *msg.Content, nil
	}

	return "", &ResponseFormatError{}
}

// doJSONRequest executes the request and returns the response body, treating
// any non-2xx status as an error.
func (s *Service) doJSONRequest(req *http.Request) ([]byte, error) {
	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", res.StatusCode, req.URL, snippet)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return raw, nil
}
