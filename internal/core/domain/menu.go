package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type MenuItem struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Featured   bool            `json:"featured"`
	CategoryID int64           `json:"category_id"`
}

// MenuItemFilter narrows and orders a menu item listing. Zero value
// means no filtering.
type MenuItemFilter struct {
	Category string          // exact category title
	MaxPrice decimal.Decimal // inclusive upper bound, ignored when zero
	Search   string          // substring match on title
	Ordering string          // one of: price, -price, title, -title
}
