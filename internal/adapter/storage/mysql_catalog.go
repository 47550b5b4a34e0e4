package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"little-lemon/internal/core/domain"
)

func (m *MySQLAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT id, title FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := m.db.QueryRowContext(ctx, `SELECT id, title FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	res, err := m.db.ExecContext(ctx, `INSERT INTO categories (title) VALUES (?)`, title)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("category id: %w", err)
	}
	return &domain.Category{ID: id, Title: title}, nil
}

func (m *MySQLAdapter) ListMenuItems(ctx context.Context, f domain.MenuItemFilter) ([]domain.MenuItem, error) {
	q := strings.Builder{}
	q.WriteString(`SELECT mi.id, mi.title, mi.price, mi.featured, mi.category_id
		FROM menu_items mi JOIN categories c ON c.id = mi.category_id`)

	var where []string
	var args []any
	if f.Category != "" {
		where = append(where, "c.title = ?")
		args = append(args, f.Category)
	}
	if !f.MaxPrice.IsZero() {
		where = append(where, "mi.price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.Search != "" {
		where = append(where, "mi.title LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}
	if len(where) > 0 {
		q.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	switch f.Ordering {
	case "price":
		q.WriteString(" ORDER BY mi.price")
	case "-price":
		q.WriteString(" ORDER BY mi.price DESC")
	case "title":
		q.WriteString(" ORDER BY mi.title")
	case "-title":
		q.WriteString(" ORDER BY mi.title DESC")
	default:
		q.WriteString(" ORDER BY mi.id")
	}

	rows, err := m.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var mi domain.MenuItem
		if err := rows.Scan(&mi.ID, &mi.Title, &mi.Price, &mi.Featured, &mi.CategoryID); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, mi)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var mi domain.MenuItem
	err := m.db.QueryRowContext(ctx, `
		SELECT id, title, price, featured, category_id FROM menu_items WHERE id = ?`, id).
		Scan(&mi.ID, &mi.Title, &mi.Price, &mi.Featured, &mi.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return &mi, nil
}

func (m *MySQLAdapter) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO menu_items (title, price, featured, category_id) VALUES (?, ?, ?, ?)`,
		item.Title, item.Price, item.Featured, item.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("menu item id: %w", err)
	}
	item.ID = id
	return &item, nil
}

func (m *MySQLAdapter) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE menu_items SET title = ?, price = ?, featured = ?, category_id = ? WHERE id = ?`,
		item.Title, item.Price, item.Featured, item.CategoryID, item.ID)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		// A no-change update also reports zero rows; verify existence.
		if _, err := m.GetMenuItem(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteMenuItem(ctx context.Context, id int64) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
