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

var errInvalidCartPayload = pkg.NewDomainErrorSimple("INVALID_CART_INPUT", "Invalid cart payload", http.StatusBadRequest)

// CartHandler handles the authenticated user's cart.
type CartHandler struct {
	usecase usecase.ICartUseCase
}

func NewCartHandler(uc usecase.ICartUseCase) *CartHandler {
	return &CartHandler{usecase: uc}
}

func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCartView(view))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var payload request.AddCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCartPayload.HTTPStatus, errInvalidCartPayload.ToHTTPError())
		return
	}

	view, err := h.usecase.AddItem(c.Request.Context(), middleware.UserID(c), usecase.CartItemInput{
		SKU:            payload.SKU,
		DisplayName:    payload.DisplayName,
		Quantity:       payload.Quantity,
		UnitPriceCents: payload.UnitPriceCents,
		Metadata:       payload.Metadata,
	})
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCartView(view))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.usecase.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("itemId"))
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCartView(view))
}

func mapCartError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrCartItemInvalid):
		return pkg.NewDomainErrorSimple("INVALID_CART_INPUT", "Invalid cart payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCartItemNotFound):
		return pkg.NewDomainErrorSimple("CART_ITEM_NOT_FOUND", "Cart item not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
