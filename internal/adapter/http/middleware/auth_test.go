package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

func protectedRouter(tokens *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/private", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "role": UserRole(c)})
	})
	r.GET("/public", OptionalAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c)})
	})
	r.GET("/admin", Auth(tokens), RequireRole(string(entities.RoleAdmin)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := protectedRouter(tokens)

	t.Run("no header is 401", func(t *testing.T) {
		if w := get(r, "/private", ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		if w := get(r, "/private", "garbage"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, _, err := tokens.GenerateAccessToken("user-1", entities.RoleCustomer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w := get(r, "/private", token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if body != `{"role":"customer","userId":"user-1"}` {
			t.Fatalf("unexpected body: %s", body)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := protectedRouter(tokens)

	t.Run("anonymous requests pass", func(t *testing.T) {
		w := get(r, "/public", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != `{"userId":""}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid tokens are treated as anonymous", func(t *testing.T) {
		w := get(r, "/public", "garbage")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != `{"userId":""}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := protectedRouter(tokens)

	t.Run("customer is 403 on admin routes", func(t *testing.T) {
		token, _, err := tokens.GenerateAccessToken("user-1", entities.RoleCustomer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w := get(r, "/admin", token); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		token, _, err := tokens.GenerateAccessToken("admin-1", entities.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w := get(r, "/admin", token); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
