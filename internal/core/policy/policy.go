// Package policy is the single place role checks live. Handlers and
// services consult it instead of re-deriving group membership ad hoc.
package policy

import "little-lemon/internal/core/domain"

type Operation int

const (
	OpCatalogWrite Operation = iota // create/update/delete menu items and categories
	OpGroupRead
	OpGroupWrite
	OpOrderUpdate // status + delivery crew assignment
	OpOrderDelete
)

// Permit reports whether the role set may perform op. A superuser
// satisfies every Manager gate. Ownership-scoped operations (own cart,
// own orders) are not decided here; they are structural in the
// services, which only ever operate on the authenticated user's rows.
func Permit(roles domain.RoleSet, op Operation) bool {
	switch op {
	case OpCatalogWrite, OpGroupRead, OpGroupWrite, OpOrderUpdate, OpOrderDelete:
		return roles.Manager || roles.Superuser
	}
	return false
}

type Scope int

const (
	ScopeOwn      Scope = iota // customer: only orders they placed
	ScopeAssigned              // delivery crew: orders assigned to them
	ScopeAll                   // manager / superuser
)

// ListScope decides which slice of the order table a caller may read.
func ListScope(roles domain.RoleSet) Scope {
	switch {
	case roles.Manager || roles.Superuser:
		return ScopeAll
	case roles.DeliveryCrew:
		return ScopeAssigned
	}
	return ScopeOwn
}

// CanSetStatus reports whether the caller may change the status of the
// given order. Managers always may; the assigned delivery crew member
// may update status (and nothing else) on their own deliveries.
func CanSetStatus(roles domain.RoleSet, callerID int64, o *domain.Order) bool {
	if Permit(roles, OpOrderUpdate) {
		return true
	}
	return roles.DeliveryCrew && o.DeliveryCrewID != nil && *o.DeliveryCrewID == callerID
}
