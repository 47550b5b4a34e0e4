package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus int

const (
	OrderStatusPlaced         OrderStatus = 0
	OrderStatusOutForDelivery OrderStatus = 1
	OrderStatusDelivered      OrderStatus = 2
)

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusPlaced && s <= OrderStatusDelivered
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPlaced:
		return "placed"
	case OrderStatusOutForDelivery:
		return "out_for_delivery"
	case OrderStatusDelivered:
		return "delivered"
	}
	return "unknown"
}

// Order is an append-only billing record: total and items are fixed at
// checkout and never re-derived from live menu prices.
type Order struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	DeliveryCrewID *int64          `json:"delivery_crew_id"`
	Status         OrderStatus     `json:"status"`
	Total          decimal.Decimal `json:"total"`
	Date           time.Time       `json:"date"`
	Items          []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	MenuItemID int64           `json:"menuitem_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}
