package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "printhub/internal/adapter/http/dto/request"
	response "printhub/internal/adapter/http/dto/response"
	"printhub/internal/adapter/http/middleware"
	"printhub/internal/usecase"
	"printhub/pkg"
)

var errInvalidAuthPayload = pkg.NewDomainErrorSimple("INVALID_AUTH_INPUT", "Invalid auth payload", http.StatusBadRequest)

// AuthHandler handles registration, login, token refresh and password
// recovery.
type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromAuthResult(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAuthResult(result))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var payload request.RefreshRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Refresh(c.Request.Context(), payload.UserID, payload.RefreshToken)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAuthResult(result))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.usecase.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

// ForgotPassword always answers 200 so callers cannot probe which emails
// are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var payload request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	if err := h.usecase.ForgotPassword(c.Request.Context(), payload.Email); err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var payload request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.ResetPassword(c.Request.Context(), payload.Token, payload.NewPassword)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAuthResult(result))
}

// OAuthStart hands the client the provider authorization URL and the state
// value the callback must echo.
func (h *AuthHandler) OAuthStart(c *gin.Context) {
	url, state, err := h.usecase.OAuthStart(c.Param("provider"), c.Query("redirect"))
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OAuthStartResponse{URL: url, State: state})
}

func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, redirect, err := h.usecase.OAuthCallback(c.Request.Context(), c.Param("provider"), state, code)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OAuthCallbackResponse{
		AuthPayloadResponse: response.FromAuthResult(result),
		Redirect:            redirect,
	})
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrRefreshInvalid):
		return pkg.NewDomainErrorSimple("REFRESH_INVALID", "Refresh token is invalid or expired", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", "An account with this email already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrWeakPassword):
		return pkg.NewDomainErrorSimple("WEAK_PASSWORD", "Password must be at least 8 characters", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrResetTokenInvalid):
		return pkg.NewDomainErrorSimple("RESET_TOKEN_INVALID", "Reset token is invalid or expired", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOAuthUnavailable):
		return pkg.NewDomainErrorSimple("OAUTH_UNAVAILABLE", "Unknown or unconfigured sign-in provider", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOAuthFailed):
		return pkg.NewDomainErrorSimple("OAUTH_FAILED", "Sign-in with the provider failed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
