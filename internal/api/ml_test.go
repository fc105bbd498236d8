package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/synthra/synthra-api/internal/domain"
	"github.com/synthra/synthra-api/internal/generation"
)

func newMLHandler(repo *fakeRepo, opts generation.Options) (*MLHandler, *generation.Service) {
	gen := generation.New(opts)
	return NewMLHandler(NewHandler(repo), gen), gen
}

func TestGenerateEmptyPrompt(t *testing.T) {
	h, gen := newMLHandler(newFakeRepo(), generation.Options{})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate", `{"prompt":"","type":"Social"}`, domain.Guest())
	h.Generate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var got map[string]string
	decodeJSON(t, w, &got)
	if got["error"] != "Prompt is required" {
		t.Errorf("Got error %q, want %q", got["error"], "Prompt is required")
	}
}

func TestGenerateTextWithoutProviderKeyIs503(t *testing.T) {
	h, gen := newMLHandler(newFakeRepo(), generation.Options{})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate", `{"prompt":"write copy","type":"Social"}`, domain.Guest())
	h.Generate(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", w.Code)
	}
}

func TestGenerateImageWithoutKeyReturnsPlaceholder(t *testing.T) {
	repo := newFakeRepo()
	h, gen := newMLHandler(repo, generation.Options{})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate", `{"prompt":"a red bicycle","type":"Image"}`, domain.Guest())
	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got struct {
		Generated string `json:"generated"`
		Metadata  struct {
			Type       string `json:"type"`
			HasContext bool   `json:"hasContext"`
			Timestamp  string `json:"timestamp"`
		} `json:"metadata"`
	}
	decodeJSON(t, w, &got)
	if got.Generated != generation.PlaceholderImage {
		t.Error("Expected the fixed placeholder image")
	}
	if got.Metadata.Type != "Image" || got.Metadata.HasContext {
		t.Errorf("Metadata mismatch: %+v", got.Metadata)
	}
	if _, err := time.Parse(time.RFC3339, got.Metadata.Timestamp); err != nil {
		t.Errorf("Timestamp is not RFC3339: %v", err)
	}

	// Guest generations never reach history.
	if repo.historyCount() != 0 {
		t.Error("Guest generation must not persist history")
	}
}

func TestGenerateAuthenticatedPersistsHistory(t *testing.T) {
	repo := newFakeRepo()
	h, gen := newMLHandler(repo, generation.Options{})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate",
		`{"prompt":"a red bicycle","type":"Image","context":{"companyName":"Acme"}}`, testUser)
	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	select {
	case <-repo.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for background history persist")
	}

	items, err := repo.GetHistory(req.Context(), testUser.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("Expected 1 history item, got %d (err %v)", len(items), err)
	}
	item := items[0]
	if item.Type != "Image" || item.Content != generation.PlaceholderImage {
		t.Errorf("History item mismatch: %+v", item)
	}
	if item.Context == nil || item.Context.CompanyName != "Acme" {
		t.Errorf("History item lost its context: %+v", item.Context)
	}
	if item.Timestamp == "" {
		t.Error("History item missing timestamp")
	}
}

func TestGeneratePersistFailureDoesNotAffectResponse(t *testing.T) {
	repo := newFakeRepo()
	repo.historyErr = errTest
	h, gen := newMLHandler(repo, generation.Options{})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate", `{"prompt":"a red bicycle","type":"Image"}`, testUser)
	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Background persist failure must not affect the response, got %d", w.Code)
	}
}

func TestGenerateTextProviderBadShapeIs500(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weird":"shape"}`))
	}))
	defer ts.Close()

	h, gen := newMLHandler(newFakeRepo(), generation.Options{TextURL: ts.URL, TextKey: "sk-test"})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate", `{"prompt":"write copy","type":"Social"}`, domain.Guest())
	h.Generate(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var got map[string]string
	decodeJSON(t, w, &got)
	if !strings.Contains(got["error"], "unexpected API response format") {
		t.Errorf("Expected format error message, got %q", got["error"])
	}
}

func TestGenerateTextSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"fresh copy"}}]}`))
	}))
	defer ts.Close()

	h, gen := newMLHandler(newFakeRepo(), generation.Options{TextURL: ts.URL, TextKey: "sk-test"})
	defer gen.Close()

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/api/ml/generate",
		`{"prompt":"write copy","type":"Marketing Copy","context":{"companyName":"Acme"}}`, domain.Guest())
	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got struct {
		Generated string `json:"generated"`
		Metadata  struct {
			Type       string `json:"type"`
			HasContext bool   `json:"hasContext"`
		} `json:"metadata"`
	}
	decodeJSON(t, w, &got)
	if got.Generated != "fresh copy" {
		t.Errorf("Got generated %q, want %q", got.Generated, "fresh copy")
	}
	if got.Metadata.Type != "Marketing Copy" || !got.Metadata.HasContext {
		t.Errorf("Metadata mismatch: %+v", got.Metadata)
	}
}
