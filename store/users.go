package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// CreateUser inserts a new user. The password is stored as-is, exactly as the
// rest of the system expects: there is no real credential scheme here, and
// pretending otherwise would break the observed login behavior.
func (d *DB) CreateUser(ctx context.Context, username, email, password string, role entities.Role) error {
	_, err := d.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		username, email, password, string(role),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// AuthenticateUser looks up a user by exact username/password match.
// Returns ErrNotFound when the credentials do not match any user.
func (d *DB) AuthenticateUser(ctx context.Context, username, password string) (*entities.User, error) {
	var u entities.User
	var role string

	err := d.QueryRowContext(ctx,
		`SELECT id, username, email, role, created_date FROM users
		 WHERE username = ? AND password_hash = ?`,
		username, password,
	).Scan(&u.ID, &u.Username, &u.Email, &role, &u.CreatedDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("authenticating user: %w", err)
	}

	u.Role = entities.Role(role)
	return &u, nil
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
// modernc.org/sqlite surfaces constraint failures in the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
