package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhamma-seva/registration-api/internal/config"
	"github.com/dhamma-seva/registration-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.StaffUser{}, &models.APIKey{})

	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, db), db
}

func TestAuthMiddleware(t *testing.T) {
	handler, db := setupAuth(t)

	staff := models.StaffUser{Username: "desk"}
	db.Create(&staff)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(StaffIDKey) == nil {
			t.Error("staff id missing from context")
		}
		w.WriteHeader(http.StatusOK)
	})
	protected := handler.AuthMiddleware(next)

	t.Run("NoCredentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("GET", "/courses", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ValidJWTCookie", func(t *testing.T) {
		token, err := handler.GenerateToken(staff.ID)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		req := httptest.NewRequest("GET", "/courses", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("InvalidJWTCookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/courses", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ValidAPIKey", func(t *testing.T) {
		key := models.APIKey{StaffUserID: staff.ID, Key: "test-key-123", Name: "desk key"}
		db.Create(&key)

		req := httptest.NewRequest("GET", "/courses", nil)
		req.Header.Set("X-API-KEY", "test-key-123")

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		// Usage is recorded.
		var reloaded models.APIKey
		db.First(&reloaded, key.ID)
		if reloaded.LastUsedAt == nil {
			t.Error("expected last_used_at to be set")
		}
	})

	t.Run("ExpiredAPIKey", func(t *testing.T) {
		expired := time.Now().Add(-time.Hour)
		key := models.APIKey{StaffUserID: staff.ID, Key: "old-key", ExpiresAt: &expired}
		db.Create(&key)

		req := httptest.NewRequest("GET", "/courses", nil)
		req.Header.Set("X-API-KEY", "old-key")

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
