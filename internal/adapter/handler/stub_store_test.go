package handler

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
)

// stubStore backs the handler tests with map-based repositories. It is
// deliberately simpler than the MySQL adapter: the handler tests only
// exercise routing, auth and status-code mapping.
type stubStore struct {
	mu     sync.Mutex
	nextID int64

	categories map[int64]domain.Category
	items      map[int64]domain.MenuItem
	cart       map[int64][]domain.CartLine
	orders     map[int64]*domain.Order
	users      map[int64]*domain.User
	groups     map[int64]map[string]bool

	tokens map[string]int64
	counts map[string]int
}

func newStubStore() *stubStore {
	return &stubStore{
		categories: make(map[int64]domain.Category),
		items:      make(map[int64]domain.MenuItem),
		cart:       make(map[int64][]domain.CartLine),
		orders:     make(map[int64]*domain.Order),
		users:      make(map[int64]*domain.User),
		groups:     make(map[int64]map[string]bool),
		tokens:     make(map[string]int64),
		counts:     make(map[string]int),
	}
}

func (s *stubStore) id() int64 { s.nextID++; return s.nextID }

func (s *stubStore) seedUser(username, token string, superuser bool, groups ...string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{ID: s.id(), Username: username, IsSuperuser: superuser}
	s.users[u.ID] = u
	s.groups[u.ID] = make(map[string]bool)
	for _, g := range groups {
		s.groups[u.ID][g] = true
	}
	s.tokens[token] = u.ID
	return u
}

func (s *stubStore) seedMenuItem(title, price string) domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Category{ID: s.id(), Title: title + "-cat"}
	s.categories[c.ID] = c
	mi := domain.MenuItem{ID: s.id(), Title: title, Price: decimal.RequireFromString(price), CategoryID: c.ID}
	s.items[mi.ID] = mi
	return mi
}

// CatalogRepository

func (s *stubStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *stubStore) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Category{ID: s.id(), Title: title}
	s.categories[c.ID] = c
	return &c, nil
}

func (s *stubStore) ListMenuItems(ctx context.Context, f domain.MenuItemFilter) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MenuItem
	for _, mi := range s.items {
		out = append(out, mi)
	}
	return out, nil
}

func (s *stubStore) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mi, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &mi, nil
}

func (s *stubStore) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.id()
	s.items[item.ID] = item
	return &item, nil
}

func (s *stubStore) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	s.items[item.ID] = item
	return nil
}

func (s *stubStore) DeleteMenuItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// CartRepository

func (s *stubStore) ListCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.cart[userID]...), nil
}

func (s *stubStore) AddCartLine(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line.ID = s.id()
	s.cart[line.UserID] = append(s.cart[line.UserID], line)
	return &line, nil
}

func (s *stubStore) ClearCart(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cart, userID)
	return nil
}

// OrderRepository

func (s *stubStore) PlaceOrder(ctx context.Context, userID int64, placedAt time.Time) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.cart[userID]
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}
	order := &domain.Order{ID: s.id(), UserID: userID, Status: domain.OrderStatusPlaced, Date: placedAt}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
		order.Items = append(order.Items, domain.OrderItem{
			ID: s.id(), OrderID: order.ID, MenuItemID: l.MenuItemID,
			Quantity: l.Quantity, UnitPrice: l.UnitPrice, LineTotal: l.LineTotal,
		})
	}
	order.Total = total
	s.orders[order.ID] = order
	delete(s.cart, userID)
	return order, nil
}

func (s *stubStore) ListOrders(ctx context.Context, scope policy.Scope, callerID int64) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		switch scope {
		case policy.ScopeOwn:
			if o.UserID != callerID {
				continue
			}
		case policy.ScopeAssigned:
			if o.DeliveryCrewID == nil || *o.DeliveryCrewID != callerID {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubStore) UpdateOrder(ctx context.Context, id int64, status domain.OrderStatus, deliveryCrewID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.DeliveryCrewID = deliveryCrewID
	return nil
}

func (s *stubStore) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// UserRepository

func (s *stubStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{ID: s.id(), Username: username, Email: email, PasswordHash: passwordHash}
	s.users[u.ID] = u
	s.groups[u.ID] = make(map[string]bool)
	cp := *u
	return &cp, nil
}

func (s *stubStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var gs []string
	for g := range s.groups[id] {
		gs = append(gs, g)
	}
	cp := *u
	cp.Roles = domain.RolesFromGroups(gs, u.IsSuperuser)
	return &cp, nil
}

func (s *stubStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	var id int64
	for uid, u := range s.users {
		if u.Username == username {
			id = uid
		}
	}
	s.mu.Unlock()
	if id == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetUserByID(context.Background(), id)
}

func (s *stubStore) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for id, gs := range s.groups {
		if gs[group] {
			out = append(out, *s.users[id])
		}
	}
	return out, nil
}

func (s *stubStore) AddToGroup(ctx context.Context, userID int64, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.groups[userID] == nil {
		s.groups[userID] = make(map[string]bool)
	}
	s.groups[userID][group] = true
	return nil
}

func (s *stubStore) RemoveFromGroup(ctx context.Context, userID int64, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groups[userID], group)
	return nil
}

// CacheRepository

func (s *stubStore) StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *stubStore) LookupToken(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

func (s *stubStore) RevokeToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *stubStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key] <= limit, nil
}
