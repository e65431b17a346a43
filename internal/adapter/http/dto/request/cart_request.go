package request

type AddCartItemRequest struct {
	SKU            string            `json:"sku" binding:"required"`
	DisplayName    string            `json:"displayName" binding:"required"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int64             `json:"unitPriceCents" binding:"required"`
	Metadata       map[string]any    `json:"metadata"`
}
