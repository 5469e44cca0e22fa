package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.PasswordHash = hashedPassword
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, name, email, role, password_hash, created_at)
		VALUES (:id, :name, :email, :role, :password_hash, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}

	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, mapError(err))
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", mapError(err))
	}

	return &user, nil
}

// GetUserByResetToken only matches tokens that have not expired.
func (r *userRepository) GetUserByResetToken(ctx context.Context, hashedToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE reset_password_token = $1
		AND reset_password_expire > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, hashedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by reset token: %w", mapError(err))
	}

	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, q *query.Query) ([]models.User, int, error) {
	return list[models.User](ctx, r.db, q)
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = :name, email = :email, role = :role
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapError(err))
	}

	return checkAffected(result)
}

// UpdatePassword stores a new hash and clears any pending reset token.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL, reset_password_expire = NULL
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return checkAffected(result)
}

func (r *userRepository) SetResetToken(ctx context.Context, userID string, hashedToken *string, expire *time.Time) error {
	query := `
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, hashedToken, expire, userID)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	if !validID(userID) {
		return ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return checkAffected(result)
}
