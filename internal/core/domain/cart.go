package domain

import "github.com/shopspring/decimal"

// CartLine snapshots the menu item price at the moment it is added;
// later catalog price changes never touch existing lines.
type CartLine struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	MenuItemID int64           `json:"menuitem_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}
