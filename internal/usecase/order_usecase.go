package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrInvalidOrderTransition = errors.New("invalid order status transition")
	ErrInvalidOrderID         = errors.New("invalid order id")
)

// taxRate is applied to the subtotal at checkout.
var taxRate = decimal.NewFromFloat(0.08)

// CheckoutInput carries optional order notes.
type CheckoutInput struct {
	Notes string
}

// IOrderUseCase exposes checkout, order history and the admin review flow.
type IOrderUseCase interface {
	Checkout(ctx context.Context, userID string, input CheckoutInput) (entities.Order, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
	Get(ctx context.Context, userID, orderID string) (entities.Order, error)
	AdminList(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (entities.Order, error)
}

type OrderUseCase struct {
	orders  interfaces.IOrderRepository
	carts   interfaces.ICartRepository
	gateway interfaces.IPaymentGateway
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

// NewOrderUseCase builds the order service. gateway may be nil; orders are
// then placed without payment capture.
func NewOrderUseCase(orders interfaces.IOrderRepository, carts interfaces.ICartRepository, gateway interfaces.IPaymentGateway) *OrderUseCase {
	return &OrderUseCase{orders: orders, carts: carts, gateway: gateway}
}

// Checkout freezes the cart into an order, captures payment when a gateway
// is configured, and clears the cart.
func (u *OrderUseCase) Checkout(ctx context.Context, userID string, input CheckoutInput) (entities.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	cart, err := u.carts.GetByUserID(ctx, userID)
	if err != nil {
		return entities.Order{}, err
	}
	if len(cart.Items) == 0 {
		return entities.Order{}, ErrEmptyCart
	}

	subtotal := SubtotalCents(cart.Items)
	tax := decimal.NewFromInt(subtotal).Mul(taxRate).Round(0).IntPart()

	now := time.Now().UTC()
	order := entities.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        entities.OrderStatusPending,
		Currency:      "USD",
		Notes:         strings.TrimSpace(input.Notes),
		Items:         freezeItems(cart.Items),
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
		PlacedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if u.gateway != nil {
		payload, _ := json.Marshal(map[string]any{
			"transaction_amount": float64(order.TotalCents) / 100,
			"description":        fmt.Sprintf("printhub order %s", order.ID),
			"external_reference": order.ID,
		})
		paymentID, status, raw, err := u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			log.Printf("[order][usecase] payment capture failed order_id=%s err=%v", order.ID, err)
			return entities.Order{}, err
		}
		order.PaymentID = paymentID
		order.PaymentStatus = status
		order.PaymentPayloadRaw = raw
	}

	order, err = u.orders.Create(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}

	cart.Items = []entities.CartItem{}
	cart.UpdatedAt = now
	if _, err := u.carts.Save(ctx, cart); err != nil {
		// The order exists; a stale cart is recoverable.
		log.Printf("[order][usecase] failed to clear cart user_id=%s order_id=%s err=%v", userID, order.ID, err)
	}

	return order, nil
}

func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	return u.orders.ListByUserID(ctx, strings.TrimSpace(userID))
}

// Get is owner-scoped: another user's order behaves as missing.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" || order.UserID != userID {
		return entities.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (u *OrderUseCase) AdminList(ctx context.Context) ([]entities.Order, error) {
	return u.orders.ListAll(ctx)
}

// UpdateStatus applies one admin review transition; see
// entities.OrderStatus.CanTransitionTo for the allowed graph.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID, status string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if !entities.ValidOrderStatus(status) {
		return entities.Order{}, ErrInvalidOrderStatus
	}
	next := entities.OrderStatus(status)

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return entities.Order{}, ErrInvalidOrderTransition
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return updated, nil
}

func freezeItems(items []entities.CartItem) []entities.OrderItem {
	out := make([]entities.OrderItem, len(items))
	for i, it := range items {
		out[i] = entities.OrderItem{
			ID:             uuid.NewString(),
			SKU:            it.SKU,
			DisplayName:    it.DisplayName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Metadata:       it.Metadata,
		}
	}
	return out
}
