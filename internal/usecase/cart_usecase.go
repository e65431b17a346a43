package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartItemInvalid  = errors.New("invalid cart item")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartItemInput is a line to add. Quantity defaults to 1 when not positive.
type CartItemInput struct {
	SKU            string
	DisplayName    string
	Quantity       int
	UnitPriceCents int64
	Metadata       map[string]any
}

// CartView is a cart plus its derived subtotal in minor currency units.
type CartView struct {
	Cart          entities.Cart
	SubtotalCents int64
}

// ICartUseCase exposes the per-user cart.
type ICartUseCase interface {
	Get(ctx context.Context, userID string) (CartView, error)
	AddItem(ctx context.Context, userID string, input CartItemInput) (CartView, error)
	RemoveItem(ctx context.Context, userID, itemID string) (CartView, error)
}

type CartUseCase struct {
	repo interfaces.ICartRepository
}

var _ ICartUseCase = (*CartUseCase)(nil)

func NewCartUseCase(repo interfaces.ICartRepository) *CartUseCase {
	return &CartUseCase{repo: repo}
}

func (u *CartUseCase) Get(ctx context.Context, userID string) (CartView, error) {
	cart, err := u.loadOrInit(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	return toView(cart), nil
}

// AddItem merges on SKU: an existing line gains quantity and adopts the
// fresher price, name and metadata.
func (u *CartUseCase) AddItem(ctx context.Context, userID string, input CartItemInput) (CartView, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	if input.SKU == "" || input.UnitPriceCents < 0 {
		return CartView{}, ErrCartItemInvalid
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	cart, err := u.loadOrInit(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	if i := cart.FindItemBySKU(input.SKU); i >= 0 {
		cart.Items[i].Quantity += input.Quantity
		cart.Items[i].UnitPriceCents = input.UnitPriceCents
		if input.DisplayName != "" {
			cart.Items[i].DisplayName = input.DisplayName
		}
		if input.Metadata != nil {
			cart.Items[i].Metadata = input.Metadata
		}
	} else {
		cart.Items = append(cart.Items, entities.CartItem{
			ID:             uuid.NewString(),
			SKU:            input.SKU,
			DisplayName:    input.DisplayName,
			Quantity:       input.Quantity,
			UnitPriceCents: input.UnitPriceCents,
			Metadata:       input.Metadata,
		})
	}

	cart.UpdatedAt = time.Now().UTC()
	cart, err = u.repo.Save(ctx, cart)
	if err != nil {
		return CartView{}, err
	}
	return toView(cart), nil
}

func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) (CartView, error) {
	cart, err := u.loadOrInit(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	i := cart.FindItemByID(strings.TrimSpace(itemID))
	if i < 0 {
		return CartView{}, ErrCartItemNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = time.Now().UTC()
	cart, err = u.repo.Save(ctx, cart)
	if err != nil {
		return CartView{}, err
	}
	return toView(cart), nil
}

// loadOrInit tolerates accounts created before cart bootstrapping existed.
func (u *CartUseCase) loadOrInit(ctx context.Context, userID string) (entities.Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Cart{}, ErrCartItemInvalid
	}
	cart, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entities.Cart{}, err
	}
	if cart.ID == "" {
		cart = entities.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []entities.CartItem{},
			UpdatedAt: time.Now().UTC(),
		}
	}
	return cart, nil
}

func toView(cart entities.Cart) CartView {
	return CartView{Cart: cart, SubtotalCents: SubtotalCents(cart.Items)}
}

// SubtotalCents sums quantity * unit price over cart lines.
func SubtotalCents(items []entities.CartItem) int64 {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromInt(it.UnitPriceCents).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	return sum.IntPart()
}
