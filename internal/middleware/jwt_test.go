package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"CAMPUS_EVENTS_BACK-END/internal/config"
	"CAMPUS_EVENTS_BACK-END/internal/models"
	"CAMPUS_EVENTS_BACK-END/internal/store"
	"CAMPUS_EVENTS_BACK-END/internal/utils"
)

func testJWTConfig(ttl time.Duration) *config.JWTConfig {
	return &config.JWTConfig{Secret: "super-secret", AccessTokenTTL: ttl}
}

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig(time.Hour)
	userID := uuid.New()

	tok, err := GenerateToken(userID, cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ValidateToken(tok, cfg)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("userID mismatch: got %s want %s", claims.UserID, userID)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig(-1 * time.Second)
	tok, err := GenerateToken(uuid.New(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ValidateToken(tok, cfg); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(uuid.New(), testJWTConfig(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	other := &config.JWTConfig{Secret: "wrong-secret", AccessTokenTTL: time.Hour}
	if _, err := ValidateToken(tok, other); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ValidateToken("not.a.jwt", testJWTConfig(time.Hour)); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestRequireAuth_AttachesUser(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig(time.Hour)
	users := store.NewMemoryUserStore()
	user := &models.User{Name: "Asha", Email: "asha@campus.edu", PasswordHash: "x", CollegeID: "C-1"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tok, err := GenerateToken(user.ID, cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	var got *models.User
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}, users, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("expected user %s in context, got %+v", user.ID, got)
	}
}

func TestRequireAuth_Failures(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig(time.Hour)
	users := store.NewMemoryUserStore()

	// Token for a user that was since removed
	removed := &models.User{Name: "Gone", Email: "gone@campus.edu", PasswordHash: "x", CollegeID: "C-2"}
	if err := users.Create(context.Background(), removed); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	removedTok, err := GenerateToken(removed.ID, cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	users.Delete(context.Background(), removed.ID)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "deleted user", header: "Bearer " + removedTok},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}, users, cfg)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
			}
			if called {
				t.Fatalf("downstream handler must not run")
			}
		})
	}
}
