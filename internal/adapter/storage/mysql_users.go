package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"little-lemon/internal/core/domain"
)

const mysqlErrDuplicateEntry = 1062

func (m *MySQLAdapter) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return nil, fmt.Errorf("username %q taken: %w", username, domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return &domain.User{ID: id, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (m *MySQLAdapter) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getUser(ctx, `WHERE id = ?`, id)
}

func (m *MySQLAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getUser(ctx, `WHERE username = ?`, username)
}

func (m *MySQLAdapter) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, is_superuser, created_at
		FROM users `+where, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsSuperuser, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	groups, err := m.userGroups(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = domain.RolesFromGroups(groups, u.IsSuperuser)
	return &u, nil
}

func (m *MySQLAdapter) userGroups(ctx context.Context, userID int64) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT group_name FROM user_groups WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (m *MySQLAdapter) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email FROM users u
		JOIN user_groups g ON g.user_id = u.id
		WHERE g.group_name = ? ORDER BY u.id`, group)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// AddToGroup is idempotent: re-adding an existing member is a no-op.
func (m *MySQLAdapter) AddToGroup(ctx context.Context, userID int64, group string) error {
	if _, err := m.db.ExecContext(ctx, `
		INSERT IGNORE INTO user_groups (user_id, group_name) VALUES (?, ?)`,
		userID, group); err != nil {
		return fmt.Errorf("add to group: %w", err)
	}
	return nil
}

// RemoveFromGroup removes a membership; removing a non-member
// succeeds. The caller is responsible for verifying the user exists.
func (m *MySQLAdapter) RemoveFromGroup(ctx context.Context, userID int64, group string) error {
	if _, err := m.db.ExecContext(ctx, `
		DELETE FROM user_groups WHERE user_id = ? AND group_name = ?`,
		userID, group); err != nil {
		return fmt.Errorf("remove from group: %w", err)
	}
	return nil
}
