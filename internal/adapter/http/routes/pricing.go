package routes

import (
	"github.com/gin-gonic/gin"

	"printhub/internal/adapter/http/handlers"
	"printhub/internal/adapter/http/middleware"
	"printhub/internal/usecase/interfaces"
)

const PathEstimates = "/estimates"

// Estimates are public; a bearer token only enriches the request so the
// upload can be tied to an account.
func addPricingRoutes(rg *gin.RouterGroup, pricingHandler *handlers.PricingHandler, tokens interfaces.ITokenService) {
	estimates := rg.Group(PathEstimates)
	estimates.Use(middleware.OptionalAuth(tokens))
	{
		estimates.POST("", pricingHandler.RequestEstimate)
	}
}
