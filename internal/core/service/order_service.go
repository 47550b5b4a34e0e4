package service

import (
	"context"
	"fmt"
	"time"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
	"little-lemon/internal/port"
)

type OrderService struct {
	orders port.OrderRepository
	users  port.UserRepository
	now    func() time.Time
}

func NewOrderService(orders port.OrderRepository, users port.UserRepository) *OrderService {
	return &OrderService{orders: orders, users: users, now: time.Now}
}

// Checkout converts the caller's cart into an order. The repository
// runs the whole sequence (read lines, insert order and items, clear
// cart) in one transaction, so a concurrent checkout on the same cart
// loses with ErrCartEmpty or ErrConflict instead of double-spending.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	order, err := s.orders.PlaceOrder(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("checkout for user %d: %w", userID, err)
	}
	return order, nil
}

// List returns the slice of the order table the caller's roles allow:
// everything for managers, assigned deliveries for crew, own orders
// otherwise.
func (s *OrderService) List(ctx context.Context, caller *domain.User) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, policy.ListScope(caller.Roles), caller.ID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(caller, order) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) canView(caller *domain.User, o *domain.Order) bool {
	switch policy.ListScope(caller.Roles) {
	case policy.ScopeAll:
		return true
	case policy.ScopeAssigned:
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == caller.ID
	}
	return o.UserID == caller.ID
}

// OrderUpdate carries the mutable fields of an order. Nil means
// "leave unchanged".
type OrderUpdate struct {
	Status         *domain.OrderStatus
	DeliveryCrewID *int64
}

// Update applies status and crew-assignment changes. Managers (and
// superusers) may set both fields; the assigned delivery crew member
// may advance status only. Status never moves backwards and
// DELIVERED is terminal.
func (s *OrderService) Update(ctx context.Context, caller *domain.User, id int64, upd OrderUpdate) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	isManager := policy.Permit(caller.Roles, policy.OpOrderUpdate)
	if upd.DeliveryCrewID != nil && !isManager {
		return nil, domain.ErrForbidden
	}
	if upd.Status != nil && !policy.CanSetStatus(caller.Roles, caller.ID, order) {
		return nil, domain.ErrForbidden
	}
	if upd.Status == nil && upd.DeliveryCrewID == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	status := order.Status
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %d", domain.ErrInvalidInput, *upd.Status)
		}
		if *upd.Status < order.Status {
			return nil, fmt.Errorf("%w: status cannot move backwards", domain.ErrInvalidInput)
		}
		status = *upd.Status
	}

	crewID := order.DeliveryCrewID
	if upd.DeliveryCrewID != nil {
		crew, err := s.users.GetUserByID(ctx, *upd.DeliveryCrewID)
		if err != nil {
			return nil, fmt.Errorf("delivery crew %d: %w", *upd.DeliveryCrewID, err)
		}
		if !crew.Roles.DeliveryCrew {
			return nil, fmt.Errorf("%w: user %d is not delivery crew", domain.ErrInvalidInput, crew.ID)
		}
		crewID = &crew.ID
	}

	if err := s.orders.UpdateOrder(ctx, id, status, crewID); err != nil {
		return nil, err
	}
	order.Status = status
	order.DeliveryCrewID = crewID
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if !policy.Permit(caller.Roles, policy.OpOrderDelete) {
		return domain.ErrForbidden
	}
	if _, err := s.orders.GetOrder(ctx, id); err != nil {
		return err
	}
	return s.orders.DeleteOrder(ctx, id)
}
