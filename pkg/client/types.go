package client

import (
	"math"
	"time"
)

// User mirrors the API's user body.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AuthPayload is the token pair returned by register, login, refresh and
// reset-password.
type AuthPayload struct {
	User             User      `json:"user"`
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// BoundingBox is the model's axis-aligned extent in millimeters.
type BoundingBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Estimate is the pricing answer for one uploaded model.
type Estimate struct {
	ID                string      `json:"id"`
	Material          string      `json:"material"`
	EstimatedGrams    float64     `json:"estimatedGrams"`
	EstimatedHours    float64     `json:"estimatedHours"`
	EstimatedPrice    float64     `json:"estimatedPrice"`
	BoundingBoxMm     BoundingBox `json:"boundingBoxMm"`
	TriangleCount     int         `json:"triangleCount"`
	RecommendedInfill int         `json:"recommendedInfill"`
	Warnings          []string    `json:"warnings"`
	FileName          string      `json:"fileName"`
	FileSizeBytes     int64       `json:"fileSizeBytes"`
	Confidence        string      `json:"confidence"`
}

// Dimensions returns the per-axis extents |max[i]-min[i]|.
func (e Estimate) Dimensions() [3]float64 {
	var d [3]float64
	for i := range d {
		d[i] = math.Abs(e.BoundingBoxMm.Max[i] - e.BoundingBoxMm.Min[i])
	}
	return d
}

// CartItem is one line of the cart as returned by the API.
type CartItem struct {
	ID             string         `json:"id"`
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Cart is the cart body with its server-computed subtotal.
type Cart struct {
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotalCents"`
}

// AddCartItemInput is the body for POST /cart/items.
type AddCartItemInput struct {
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// OrderItem is a frozen cart line inside an order.
type OrderItem struct {
	ID             string         `json:"id"`
	SKU            string         `json:"sku"`
	DisplayName    string         `json:"displayName"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Order mirrors the API's order body.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Status        string      `json:"status"`
	Currency      string      `json:"currency"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
	SubtotalCents int64       `json:"subtotalCents"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`
	PaymentID     string      `json:"paymentId,omitempty"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	PlacedAt      time.Time   `json:"placedAt"`
}
