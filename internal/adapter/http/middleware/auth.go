package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"printhub/internal/usecase/interfaces"
	"printhub/pkg"
)

const (
	// ContextUserID and ContextUserRole are set on the gin context by Auth
	// and OptionalAuth after a bearer token is verified.
	ContextUserID   = "auth.userID"
	ContextUserRole = "auth.userRole"
)

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid access token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)
)

// Auth requires a valid bearer access token and stores the caller's
// identity on the context. Requests without one are rejected with 401.
func Auth(tokens interfaces.ITokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, string(claims.Role))
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid bearer token is
// present and lets the request through either way. Invalid tokens are
// treated as anonymous rather than rejected.
func OptionalAuth(tokens interfaces.ITokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, tokens); ok {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserRole, string(claims.Role))
		}
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match.
// It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserRole(c) != role {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// UserRole returns the authenticated user's role, or "".
func UserRole(c *gin.Context) string {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func parseBearer(c *gin.Context, tokens interfaces.ITokenService) (*interfaces.TokenClaims, bool) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, false
	}
	claims, err := tokens.ParseAccessToken(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}
