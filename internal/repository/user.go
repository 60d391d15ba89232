package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront-api/internal/models"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, type, email, password_hash, first_name, last_name, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		user.ID, user.Type, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Phone, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string, userType models.UserType) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, type, email, password_hash, first_name, last_name, phone, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1 AND type = $2 AND deleted_at IS NULL`, email, userType)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string, userType models.UserType) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, type, email, password_hash, first_name, last_name, phone, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1 AND type = $2 AND deleted_at IS NULL`, id, userType)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, userType models.UserType) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND type = $2 AND deleted_at IS NULL)`,
		email, userType)
	return exists, err
}

func (r *UserRepository) List(ctx context.Context, userType models.UserType, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, type, email, password_hash, first_name, last_name, phone, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE type = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userType, limit, offset)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, userType models.UserType) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM users WHERE type = $1 AND deleted_at IS NULL`, userType)
	return count, err
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, phone = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Phone, user.IsActive,
	).Scan(&user.UpdatedAt)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id, passwordHash)
	return err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}
