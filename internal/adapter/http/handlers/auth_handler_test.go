package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"printhub/internal/adapter/http/handlers/mocks"
	"printhub/internal/domain/entities"
	"printhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func authRouter(h *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)
	r.POST("/v1/auth/forgot-password", h.ForgotPassword)
	r.GET("/v1/auth/oauth/:provider/start", h.OAuthStart)
	r.GET("/v1/auth/oauth/:provider/callback", h.OAuthCallback)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("malformed payload is 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/register", `{"name":"Ann"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().Register(gomock.Any(), "Ann", "ann@example.com", "correct horse").
			Return(usecase.AuthResult{}, usecase.ErrEmailTaken)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/register", `{"name":"Ann","email":"ann@example.com","password":"correct horse"}`)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success is 201 with the full auth payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().Register(gomock.Any(), "Ann", "ann@example.com", "correct horse").
			Return(usecase.AuthResult{
				User: entities.User{
					ID:    "user-1",
					Name:  "Ann",
					Email: "ann@example.com",
					Role:  entities.RoleCustomer,
				},
				AccessToken:      "access-token",
				AccessExpiresAt:  time.Now().Add(15 * time.Minute),
				RefreshToken:     "refresh-token",
				RefreshExpiresAt: time.Now().Add(14 * 24 * time.Hour),
			}, nil)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/register", `{"name":"Ann","email":"ann@example.com","password":"correct horse"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var res map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["accessToken"] != "access-token" || res["refreshToken"] != "refresh-token" {
			t.Fatalf("tokens missing from response: %v", res)
		}
		user, ok := res["user"].(map[string]any)
		if !ok || user["id"] != "user-1" || user["email"] != "ann@example.com" {
			t.Fatalf("unexpected user payload: %v", res["user"])
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bad credentials are 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().Login(gomock.Any(), "ann@example.com", "wrong").
			Return(usecase.AuthResult{}, usecase.ErrInvalidCredentials)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/login", `{"email":"ann@example.com","password":"wrong"}`)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var res map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid error body: %v", err)
		}
		if res["error"] != "Invalid email or password" {
			t.Fatalf("unexpected error message: %q", res["error"])
		}
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("rejected refresh is 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().Refresh(gomock.Any(), "user-1", "stale").
			Return(usecase.AuthResult{}, usecase.ErrRefreshInvalid)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/refresh", `{"userId":"user-1","refreshToken":"stale"}`)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthHandler_OAuthStart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown provider is 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().OAuthStart("gitlab", "").
			Return("", "", usecase.ErrOAuthUnavailable)
		r := authRouter(NewAuthHandler(uc))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/oauth/gitlab/start", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns the provider url and state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().OAuthStart("google", "/estimate").
			Return("https://accounts.google.com/o/oauth2/auth?state=s1", "s1", nil)
		r := authRouter(NewAuthHandler(uc))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/oauth/google/start?redirect=%2Festimate", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var res map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["url"] == "" || res["state"] != "s1" {
			t.Fatalf("unexpected start payload: %v", res)
		}
	})
}

func TestAuthHandler_OAuthCallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing state or code is 400 without a usecase call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := authRouter(NewAuthHandler(uc))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/oauth/github/callback?code=abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("failed sign-in is 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().OAuthCallback(gomock.Any(), "github", "s1", "bad-code").
			Return(usecase.AuthResult{}, "", usecase.ErrOAuthFailed)
		r := authRouter(NewAuthHandler(uc))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/oauth/github/callback?state=s1&code=bad-code", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns tokens and the redirect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().OAuthCallback(gomock.Any(), "github", "s1", "good-code").
			Return(usecase.AuthResult{
				User: entities.User{
					ID:        "user-1",
					Name:      "Ann",
					Email:     "ann@example.com",
					Role:      entities.RoleCustomer,
					AvatarURL: "https://avatars.example.com/ann.png",
				},
				AccessToken:      "access-token",
				AccessExpiresAt:  time.Now().Add(15 * time.Minute),
				RefreshToken:     "refresh-token",
				RefreshExpiresAt: time.Now().Add(14 * 24 * time.Hour),
			}, "/cart", nil)
		r := authRouter(NewAuthHandler(uc))

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/oauth/github/callback?state=s1&code=good-code", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var res map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if res["accessToken"] != "access-token" || res["redirect"] != "/cart" {
			t.Fatalf("unexpected callback payload: %v", res)
		}
		user, ok := res["user"].(map[string]any)
		if !ok || user["avatarUrl"] != "https://avatars.example.com/ann.png" {
			t.Fatalf("unexpected user payload: %v", res["user"])
		}
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("always answers 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		uc.EXPECT().ForgotPassword(gomock.Any(), "ghost@example.com").Return(nil)
		r := authRouter(NewAuthHandler(uc))

		w := postJSON(r, "/v1/auth/forgot-password", `{"email":"ghost@example.com"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
