package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
)

const userColumns = `id, first_name, last_name, username, email, password_hash, title, image, phone, role_id, deleted_at`

// Fixed queries per lookup key. Field names never reach the SQL from input.
var userLookupQueries = map[interfaces.UserLookupField]string{
	interfaces.LookupByID:       "SELECT " + userColumns + " FROM users WHERE id = $1::bigint AND deleted_at IS NULL",
	interfaces.LookupByUsername: "SELECT " + userColumns + " FROM users WHERE username = $1 AND deleted_at IS NULL",
	interfaces.LookupByEmail:    "SELECT " + userColumns + " FROM users WHERE email = $1 AND deleted_at IS NULL",
	interfaces.LookupByPhone:    "SELECT " + userColumns + " FROM users WHERE phone = $1 AND deleted_at IS NULL",
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username,
		&user.Email, &user.PasswordHash, &user.Title, &user.Image, &user.Phone,
		&user.RoleID, &user.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindBy(ctx context.Context, field interfaces.UserLookupField, value string) (*entities.User, error) {
	query, ok := userLookupQueries[field]
	if !ok {
		return nil, fmt.Errorf("unsupported lookup field %q", field)
	}
	return scanUser(r.db.QueryRow(ctx, query, value))
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE (username = $1 OR email = $2) AND deleted_at IS NULL",
		username, email))
}

// Register creates the user, its zero balance, and the first token row in a
// single transaction. The token is signed via sign once the ID is known.
func (r *UserRepository) Register(ctx context.Context, user entities.User, sign interfaces.SignFunc) (entities.User, string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := scanUser(tx.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, phone, username, email, password_hash, title, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		user.FirstName, user.LastName, user.Phone, user.Username, user.Email,
		user.PasswordHash, user.Title, user.Image))
	if err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, "", ErrConflict
		}
		return entities.User{}, "", fmt.Errorf("create user: %w", err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO balances (user_id, balance) VALUES ($1, 0)", created.ID); err != nil {
		return entities.User{}, "", fmt.Errorf("create balance: %w", err)
	}

	token, err := sign(*created)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO tokens (token) VALUES ($1)", token); err != nil {
		return entities.User{}, "", fmt.Errorf("create token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.User{}, "", fmt.Errorf("commit transaction: %w", err)
	}
	return *created, token, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile entities.Profile) (*entities.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, phone = $3, username = $4,
		        email = $5, title = $6, image = $7
		 WHERE id = $8 AND deleted_at IS NULL
		 RETURNING `+userColumns,
		profile.FirstName, profile.LastName, profile.Phone, profile.Username,
		profile.Email, profile.Title, profile.Image, profile.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET password_hash = $1 WHERE email = $2 AND deleted_at IS NULL",
		passwordHash, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
