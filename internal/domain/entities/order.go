package entities

import (
	"encoding/json"
	"time"
)

// OrderStatus tracks an order through the print shop.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPrinting  OrderStatus = "printing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPrinting, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the admin review flow:
// pending -> printing -> shipped -> completed, with cancellation allowed
// from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPrinting || next == OrderStatusCancelled
	case OrderStatusPrinting:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	// completed and cancelled are terminal
	return false
}

// OrderItem is a cart line frozen at checkout time.
type OrderItem struct {
	ID             string         `json:"id"`
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Order is a placed order persisted in DynamoDB.
//
// Storage model:
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// Payment fields record the outcome reported by the payment gateway at
// checkout; PaymentPayloadRaw keeps the provider body for audit.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Status        OrderStatus `json:"status"`
	Currency      string      `json:"currency"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
	SubtotalCents int64       `json:"subtotalCents"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`

	PaymentID         string          `json:"paymentId,omitempty"`
	PaymentStatus     string          `json:"paymentStatus,omitempty"`
	PaymentPayloadRaw json.RawMessage `json:"-"`

	PlacedAt  time.Time `json:"placedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
