package response

import (
	"printhub/internal/domain/entities"
	"printhub/internal/usecase"
)

type CartItemResponse struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	DisplayName    string            `json:"displayName"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int64             `json:"unitPriceCents"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotalCents"`
}

func FromCartItem(i entities.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:             i.ID,
		SKU:            i.SKU,
		DisplayName:    i.DisplayName,
		Quantity:       i.Quantity,
		UnitPriceCents: i.UnitPriceCents,
		Metadata:       i.Metadata,
	}
}

func FromCartView(v usecase.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(v.Cart.Items))
	for _, i := range v.Cart.Items {
		items = append(items, FromCartItem(i))
	}
	return CartResponse{Items: items, SubtotalCents: v.SubtotalCents}
}
