package port

import (
	"context"
	"time"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, title string) (*domain.Category, error)

	ListMenuItems(ctx context.Context, f domain.MenuItemFilter) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
}

type CartRepository interface {
	ListCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error)
	AddCartLine(ctx context.Context, line domain.CartLine) (*domain.CartLine, error)
	ClearCart(ctx context.Context, userID int64) error
}

type OrderRepository interface {
	// PlaceOrder converts userID's cart lines into an order plus items
	// and clears the cart, all in one transaction. Returns
	// domain.ErrCartEmpty when there is nothing to convert and
	// domain.ErrConflict when a concurrent checkout consumed the lines.
	PlaceOrder(ctx context.Context, userID int64, placedAt time.Time) (*domain.Order, error)

	ListOrders(ctx context.Context, scope policy.Scope, callerID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, status domain.OrderStatus, deliveryCrewID *int64) error
	DeleteOrder(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	// GetUserByID loads the user together with current group
	// memberships; callers must not cache the result across requests.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	ListGroupMembers(ctx context.Context, group string) ([]domain.User, error)
	AddToGroup(ctx context.Context, userID int64, group string) error
	RemoveFromGroup(ctx context.Context, userID int64, group string) error
}
