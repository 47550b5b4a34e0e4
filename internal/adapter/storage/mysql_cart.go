package storage

import (
	"context"
	"fmt"

	"little-lemon/internal/core/domain"
)

func (m *MySQLAdapter) ListCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, menu_item_id, quantity, unit_price, line_total
		FROM cart_lines WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var out []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.MenuItemID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) AddCartLine(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO cart_lines (user_id, menu_item_id, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?)`,
		line.UserID, line.MenuItemID, line.Quantity, line.UnitPrice, line.LineTotal)
	if err != nil {
		return nil, fmt.Errorf("insert cart line: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("cart line id: %w", err)
	}
	line.ID = id
	return &line, nil
}

func (m *MySQLAdapter) ClearCart(ctx context.Context, userID int64) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
