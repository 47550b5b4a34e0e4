package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/port"
)

type CartService struct {
	catalog port.CatalogRepository
	cart    port.CartRepository
}

func NewCartService(catalog port.CatalogRepository, cart port.CartRepository) *CartService {
	return &CartService{catalog: catalog, cart: cart}
}

// AddItem snapshots the menu item's current price into a new cart line.
// Repeated adds of the same item append separate lines rather than
// merging quantities, matching the checkout copy semantics (one order
// item per cart line).
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID int64, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("menu item %d: %w", menuItemID, err)
	}
	line := domain.CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		LineTotal:  item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	return s.cart.AddCartLine(ctx, line)
}

// ListItems returns every cart line owned by userID. An empty cart is
// an empty slice, not an error.
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	lines, err := s.cart.ListCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

// Clear is idempotent: clearing an already empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cart.ClearCart(ctx, userID)
}
