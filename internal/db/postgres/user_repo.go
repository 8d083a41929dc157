package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"wilo/internal/core/community"
	"wilo/internal/core/users"
)

type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a PostgreSQL user repository. It satisfies both
// users.Repository and community.AuthorDirectory.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, nickname, description, profile_image_url, created_at`

// Create inserts a new account. The unique indexes on email and nickname
// are the authoritative guard against signup races; constraint violations
// are mapped back to the domain errors.
func (r *UserRepository) Create(ctx context.Context, user *users.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, nickname, description, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Email, user.Password, user.Nickname, user.Description, user.ProfileImageURL).
		Scan(&user.ID, &user.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		if strings.Contains(pqErr.Constraint, "nickname") {
			return users.ErrNicknameTaken
		}
		return users.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}) (*users.User, error) {
	var user users.User
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE %s
	`, userColumns, where), arg).Scan(
		&user.ID, &user.Email, &user.Password, &user.Nickname,
		&user.Description, &user.ProfileImageURL, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = $1", email)
}

func (r *UserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, "nickname = $1", nickname)
}

func (r *UserRepository) exists(ctx context.Context, where string, arg interface{}) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM users WHERE %s)
	`, where), arg).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, user *users.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET nickname = $1, description = $2, profile_image_url = $3
		WHERE id = $4
	`, user.Nickname, user.Description, user.ProfileImageURL, user.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return users.ErrNicknameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

// GetAuthorSummary resolves a user id to the author block embedded in post
// detail views and comments. Satisfies community.AuthorDirectory.
func (r *UserRepository) GetAuthorSummary(ctx context.Context, userID int64) (community.AuthorSummary, error) {
	var summary community.AuthorSummary
	var profileImage sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nickname, profile_image_url FROM users WHERE id = $1
	`, userID).Scan(&summary.ID, &summary.Nickname, &profileImage)
	if err == sql.ErrNoRows {
		return community.AuthorSummary{}, users.ErrUserNotFound
	}
	if err != nil {
		return community.AuthorSummary{}, fmt.Errorf("failed to get author summary: %w", err)
	}
	if profileImage.Valid {
		summary.ProfileImageURL = &profileImage.String
	}
	return summary, nil
}
