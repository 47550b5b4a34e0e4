package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
)

// memStore is an in-memory stand-in for the MySQL adapter. PlaceOrder
// holds the same lock as the cart operations, so concurrent checkouts
// serialize exactly like the real transaction does.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]domain.Category
	items      map[int64]domain.MenuItem
	cart       map[int64][]domain.CartLine
	orders     map[int64]*domain.Order
	users      map[int64]*domain.User
	groups     map[int64]map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[int64]domain.Category),
		items:      make(map[int64]domain.MenuItem),
		cart:       make(map[int64][]domain.CartLine),
		orders:     make(map[int64]*domain.Order),
		users:      make(map[int64]*domain.User),
		groups:     make(map[int64]map[string]bool),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// --- seeding helpers ---

func (m *memStore) seedCategory(title string) domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Category{ID: m.id(), Title: title}
	m.categories[c.ID] = c
	return c
}

func (m *memStore) seedMenuItem(title, price string, categoryID int64) domain.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, _ := decimal.NewFromString(price)
	mi := domain.MenuItem{ID: m.id(), Title: title, Price: p, CategoryID: categoryID}
	m.items[mi.ID] = mi
	return mi
}

func (m *memStore) seedUser(username string, superuser bool, groups ...string) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &domain.User{ID: m.id(), Username: username, IsSuperuser: superuser}
	m.users[u.ID] = u
	m.groups[u.ID] = make(map[string]bool)
	for _, g := range groups {
		m.groups[u.ID][g] = true
	}
	return m.loadUser(u.ID)
}

// loadUser returns a copy with roles derived from current groups.
// Callers must hold m.mu.
func (m *memStore) loadUser(id int64) *domain.User {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	var gs []string
	for g := range m.groups[id] {
		gs = append(gs, g)
	}
	cp := *u
	cp.Roles = domain.RolesFromGroups(gs, u.IsSuperuser)
	return &cp
}

// --- CatalogRepository ---

func (m *memStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Category{ID: m.id(), Title: title}
	m.categories[c.ID] = c
	return &c, nil
}

func (m *memStore) ListMenuItems(ctx context.Context, f domain.MenuItemFilter) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MenuItem
	for _, mi := range m.items {
		out = append(out, mi)
	}
	return out, nil
}

func (m *memStore) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mi, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &mi, nil
}

func (m *memStore) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.items[item.ID] = item
	return &item, nil
}

func (m *memStore) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *memStore) DeleteMenuItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// --- CartRepository ---

func (m *memStore) ListCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine(nil), m.cart[userID]...), nil
}

func (m *memStore) AddCartLine(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.ID = m.id()
	m.cart[line.UserID] = append(m.cart[line.UserID], line)
	return &line, nil
}

func (m *memStore) ClearCart(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cart, userID)
	return nil
}

// --- OrderRepository ---

func (m *memStore) PlaceOrder(ctx context.Context, userID int64, placedAt time.Time) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.cart[userID]
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}
	total := decimal.Zero
	order := &domain.Order{
		ID:     m.id(),
		UserID: userID,
		Status: domain.OrderStatusPlaced,
		Date:   placedAt,
	}
	for _, l := range lines {
		total = total.Add(l.LineTotal)
		order.Items = append(order.Items, domain.OrderItem{
			ID:         m.id(),
			OrderID:    order.ID,
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			LineTotal:  l.LineTotal,
		})
	}
	order.Total = total
	m.orders[order.ID] = order
	delete(m.cart, userID)
	return order, nil
}

func (m *memStore) ListOrders(ctx context.Context, scope policy.Scope, callerID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
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

func (m *memStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) UpdateOrder(ctx context.Context, id int64, status domain.OrderStatus, deliveryCrewID *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.DeliveryCrewID = deliveryCrewID
	return nil
}

func (m *memStore) DeleteOrder(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

// --- UserRepository ---

func (m *memStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return nil, domain.ErrConflict
		}
	}
	u := &domain.User{ID: m.id(), Username: username, Email: email, PasswordHash: passwordHash}
	m.users[u.ID] = u
	m.groups[u.ID] = make(map[string]bool)
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.loadUser(id)
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Username == username {
			return m.loadUser(id), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for id, gs := range m.groups {
		if gs[group] {
			out = append(out, *m.users[id])
		}
	}
	return out, nil
}

func (m *memStore) AddToGroup(ctx context.Context, userID int64, group string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.groups[userID] == nil {
		m.groups[userID] = make(map[string]bool)
	}
	m.groups[userID][group] = true
	return nil
}

func (m *memStore) RemoveFromGroup(ctx context.Context, userID int64, group string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.groups[userID], group)
	return nil
}

// --- CacheRepository ---

type mockCache struct {
	mu     sync.Mutex
	tokens map[string]int64
	counts map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{tokens: make(map[string]int64), counts: make(map[string]int)}
}

func (c *mockCache) StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[token] = userID
	return nil
}

func (c *mockCache) LookupToken(ctx context.Context, token string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

func (c *mockCache) RevokeToken(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, token)
	return nil
}

func (c *mockCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key] <= limit, nil
}
