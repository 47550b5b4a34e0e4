package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash VARCHAR(100) NOT NULL,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_groups (
		user_id BIGINT NOT NULL,
		group_name VARCHAR(50) NOT NULL,
		PRIMARY KEY (user_id, group_name),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		category_id BIGINT NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS cart_lines (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		menu_item_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		line_total DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(id),
		INDEX idx_cart_lines_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		delivery_crew_id BIGINT NULL,
		status TINYINT NOT NULL DEFAULT 0,
		total DECIMAL(10,2) NOT NULL,
		placed_at DATE NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (delivery_crew_id) REFERENCES users(id),
		INDEX idx_orders_user (user_id),
		INDEX idx_orders_crew (delivery_crew_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		menu_item_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		line_total DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
