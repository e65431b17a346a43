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

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)

// OrderHandler handles checkout, order history and the admin review flow.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var payload request.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
			return
		}
	}

	order, err := h.usecase.Checkout(c.Request.Context(), middleware.UserID(c), usecase.CheckoutInput{
		Notes: payload.Notes,
	})
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.usecase.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.usecase.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// AdminList returns every order in the system, newest first.
func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.usecase.AdminList(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// UpdateStatus advances an order through the review flow. Transitions
// outside the graph are rejected with 409.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		return pkg.NewDomainErrorSimple("EMPTY_CART", "Cart is empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidOrderTransition):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_TRANSITION", "Order cannot move to the requested status", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
