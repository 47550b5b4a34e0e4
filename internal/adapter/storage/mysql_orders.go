package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
)

// PlaceOrder runs the whole cart-to-order conversion in one
// transaction. The cart lines are locked up front, so two concurrent
// checkouts for the same user serialize: the loser sees an empty cart.
// The delete count is still verified against the locked set; a
// mismatch means something consumed the lines mid-flight and the
// transaction rolls back with ErrConflict.
func (m *MySQLAdapter) PlaceOrder(ctx context.Context, userID int64, placedAt time.Time) (*domain.Order, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, menu_item_id, quantity, unit_price, line_total
		FROM cart_lines WHERE user_id = ? ORDER BY id FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("lock cart lines: %w", err)
	}
	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.MenuItemID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, delivery_crew_id, status, total, placed_at)
		VALUES (?, NULL, ?, ?, ?)`,
		userID, domain.OrderStatusPlaced, total, placedAt.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}

	order := &domain.Order{
		ID:     orderID,
		UserID: userID,
		Status: domain.OrderStatusPlaced,
		Total:  total,
		Date:   placedAt.Truncate(24 * time.Hour),
	}
	for _, l := range lines {
		ires, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, l.MenuItemID, l.Quantity, l.UnitPrice, l.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		itemID, err := ires.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("order item id: %w", err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:         itemID,
			OrderID:    orderID,
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			LineTotal:  l.LineTotal,
		})
	}

	dres, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	if deleted, _ := dres.RowsAffected(); deleted != int64(len(lines)) {
		return nil, domain.ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return order, nil
}

const orderColumns = `id, user_id, delivery_crew_id, status, total, placed_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var crew sql.NullInt64
	if err := row.Scan(&o.ID, &o.UserID, &crew, &o.Status, &o.Total, &o.Date); err != nil {
		return nil, err
	}
	if crew.Valid {
		o.DeliveryCrewID = &crew.Int64
	}
	return &o, nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context, scope policy.Scope, callerID int64) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	switch scope {
	case policy.ScopeOwn:
		query += ` WHERE user_id = ?`
		args = append(args, callerID)
	case policy.ScopeAssigned:
		query += ` WHERE delivery_crew_id = ?`
		args = append(args, callerID)
	}
	query += ` ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(m.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, quantity, unit_price, line_total
		FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (m *MySQLAdapter) UpdateOrder(ctx context.Context, id int64, status domain.OrderStatus, deliveryCrewID *int64) error {
	var crew sql.NullInt64
	if deliveryCrewID != nil {
		crew = sql.NullInt64{Int64: *deliveryCrewID, Valid: true}
	}
	res, err := m.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, delivery_crew_id = ? WHERE id = ?`, status, crew, id)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		if _, err := m.GetOrder(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteOrder(ctx context.Context, id int64) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
