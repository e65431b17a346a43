package entities

import "time"

// CartItem is one line of a user's cart. SKU carries the estimate ID for
// custom prints, so re-adding the same estimate merges into one line.
type CartItem struct {
	ID             string         `json:"id"`
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Cart is the whole-cart aggregate persisted as a single DynamoDB item.
//
// Storage model:
//   - PK: user_id (one cart per user, created at registration)
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindItemBySKU returns the index of the line with the given SKU, or -1.
func (c Cart) FindItemBySKU(sku string) int {
	for i, it := range c.Items {
		if it.SKU == sku {
			return i
		}
	}
	return -1
}

// FindItemByID returns the index of the line with the given ID, or -1.
func (c Cart) FindItemByID(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
