package routes

import (
	"github.com/gin-gonic/gin"

	"printhub/internal/adapter/http/handlers"
	"printhub/internal/adapter/http/middleware"
	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"
)

const (
	PathCart        = "/cart"
	PathOrders      = "/orders"
	PathAdminOrders = "/admin/orders"
)

func addStorefrontRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler, orderHandler *handlers.OrderHandler, tokens interfaces.ITokenService) {
	cart := rg.Group(PathCart, middleware.Auth(tokens))
	{
		cart.GET("", cartHandler.Get)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
	}

	orders := rg.Group(PathOrders, middleware.Auth(tokens))
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
	}

	admin := rg.Group(PathAdminOrders, middleware.Auth(tokens), middleware.RequireRole(string(entities.RoleAdmin)))
	{
		admin.GET("", orderHandler.AdminList)
		admin.PATCH("/:id/status", orderHandler.UpdateStatus)
	}
}
