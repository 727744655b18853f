package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rating_of_titles/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	// LIMIT 2 so an ambiguous username is detectable without scanning the table.
	selectUserByUsernameSQL = `SELECT id, username, email, password_hash FROM users WHERE username = ? LIMIT 2`
	selectRoleByNameSQL     = `SELECT id FROM roles WHERE name = ?`
	insertRoleSQL           = `INSERT INTO roles (name) VALUES (?)`
	insertRoleLinkSQL       = `INSERT INTO roles_users (user_id, role_id) VALUES (?, ?)`
	selectRolesOfUserSQL    = `SELECT r.id, r.name, r.description FROM roles r
		JOIN roles_users ru ON ru.role_id = r.id WHERE ru.user_id = ?`
)

// Create inserts a new user, links the optional role inside the same
// transaction, and returns the new user's ID. A duplicate email surfaces
// as models.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, username, email, hash, role string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create user %q: %w", username, err)
	}

	id, err := createUserTx(tx, username, email, hash, role)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create user %q: %w", username, err)
	}
	return id, nil
}

func createUserTx(tx *sql.Tx, username, email, hash, role string) (int, error) {
	res, err := tx.Exec(insertUserSQL, username, email, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, models.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	userID := int(lastID)

	if role != "" {
		if err := linkRoleTx(tx, userID, role); err != nil {
			return 0, err
		}
	}
	return userID, nil
}

// linkRoleTx resolves (or creates) the role row and writes the join row.
func linkRoleTx(tx *sql.Tx, userID int, role string) error {
	var roleID int64
	err := tx.QueryRow(selectRoleByNameSQL, role).Scan(&roleID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(insertRoleSQL, role)
		if err != nil {
			return fmt.Errorf("insert role %q: %w", role, err)
		}
		if roleID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("get last insert id for role %q: %w", role, err)
		}
	case err != nil:
		return fmt.Errorf("select role %q: %w", role, err)
	}

	if _, err := tx.Exec(insertRoleLinkSQL, userID, roleID); err != nil {
		return fmt.Errorf("link role %q to user %d: %w", role, userID, err)
	}
	return nil
}

// GetByUsername fetches exactly one user by username. Absence yields
// models.ErrUserNotFound and more than one match models.ErrAmbiguousUser;
// a lookup that cannot name a single row must not authenticate anyone.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	defer rows.Close()

	var found []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user %q: %w", username, err)
		}
		found = append(found, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}

	switch len(found) {
	case 0:
		return nil, models.ErrUserNotFound
	case 1:
		return &found[0], nil
	default:
		return nil, models.ErrAmbiguousUser
	}
}

// RolesOf returns the roles linked to a user via the join table.
func (r *UserRepository) RolesOf(ctx context.Context, userID int) ([]models.Role, error) {
	rows, err := r.db.QueryContext(ctx, selectRolesOfUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select roles of user %d: %w", userID, err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var (
			role models.Role
			desc sql.NullString
		)
		if err := rows.Scan(&role.ID, &role.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan role of user %d: %w", userID, err)
		}
		role.Description = desc.String
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select roles of user %d: %w", userID, err)
	}
	return roles, nil
}

// isUniqueViolation matches SQLite's uniqueness error text; the driver
// does not export a typed constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
