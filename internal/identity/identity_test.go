package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/synthra/synthra-api/internal/domain"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestSignParseRoundTrip(t *testing.T) {
	original := domain.Identity{ID: "user_alice", Email: "alice@example.com", Name: "Alice"}

	token, err := Sign(original, testSecret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	got, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got.ID != original.ID || got.Email != original.Email || got.Name != original.Name {
		t.Errorf("Round trip mismatch: got %+v, want %+v", got, original)
	}
	if got.IsGuest {
		t.Error("Parsed identity must not be a guest")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Sign(domain.Identity{ID: "user_alice"}, testSecret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := Parse(token, "a-different-secret"); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	// A structurally valid token without the _id claim must be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "alice@example.com",
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := Parse(signed, testSecret); err == nil {
		t.Error("Expected error for token without user id claim")
	}
}

func TestParseRejectsMalformedToken(t *testing.T) {
	if _, err := Parse("not.a.token", testSecret); err == nil {
		t.Error("Expected error for malformed token")
	}
}

func identityEcho(t *testing.T) (http.Handler, *domain.Identity) {
	t.Helper()
	captured := &domain.Identity{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(testSecret)(next), captured
}

func TestMiddlewareNoHeaderIsGuest(t *testing.T) {
	handler, captured := identityEcho(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !captured.IsGuest {
		t.Error("Expected guest identity without Authorization header")
	}
	if captured.ID != domain.GuestID {
		t.Errorf("Expected guest sentinel id, got %q", captured.ID)
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	handler, captured := identityEcho(t)

	token, err := Sign(domain.Identity{ID: "user_bob", Email: "bob@example.com", Name: "Bob"}, testSecret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if captured.IsGuest {
		t.Error("Authenticated caller must never be a guest")
	}
	if captured.ID != "user_bob" {
		t.Errorf("Expected user_bob, got %q", captured.ID)
	}
}

func TestMiddlewareBareTokenWithoutBearerPrefix(t *testing.T) {
	handler, captured := identityEcho(t)

	token, err := Sign(domain.Identity{ID: "user_bob"}, testSecret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if captured.ID != "user_bob" {
		t.Errorf("Expected user_bob, got %q", captured.ID)
	}
}

func TestMiddlewareInvalidTokenIs401(t *testing.T) {
	handler, _ := identityEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
}

func TestFromContextDefaultsToGuest(t *testing.T) {
	id := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if !id.IsGuest {
		t.Error("Context without identity must yield a guest")
	}
}
