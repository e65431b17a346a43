package routes

import (
	"github.com/gin-gonic/gin"

	"printhub/internal/adapter/http/handlers"
	"printhub/internal/adapter/http/middleware"
	"printhub/internal/usecase/interfaces"
)

const PathAuth = "/auth"

func addAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, tokens interfaces.ITokenService) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/oauth/:provider/start", authHandler.OAuthStart)
		auth.GET("/oauth/:provider/callback", authHandler.OAuthCallback)

		auth.GET("/me", middleware.Auth(tokens), authHandler.Me)
	}
}
