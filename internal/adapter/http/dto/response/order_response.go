package response

import (
	"time"

	"printhub/internal/domain/entities"
)

type OrderItemResponse struct {
	ID             string         `json:"id"`
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	SubtotalCents int64               `json:"subtotalCents"`
	TaxCents      int64               `json:"taxCents"`
	TotalCents    int64               `json:"totalCents"`
	PaymentID     string              `json:"paymentId,omitempty"`
	PaymentStatus string              `json:"paymentStatus,omitempty"`
	PlacedAt      time.Time           `json:"placedAt"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, OrderItemResponse{
			ID:             i.ID,
			SKU:            i.SKU,
			DisplayName:    i.DisplayName,
			Quantity:       i.Quantity,
			UnitPriceCents: i.UnitPriceCents,
			Metadata:       i.Metadata,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		Currency:      o.Currency,
		Notes:         o.Notes,
		Items:         items,
		SubtotalCents: o.SubtotalCents,
		TaxCents:      o.TaxCents,
		TotalCents:    o.TotalCents,
		PaymentID:     o.PaymentID,
		PaymentStatus: o.PaymentStatus,
		PlacedAt:      o.PlacedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
