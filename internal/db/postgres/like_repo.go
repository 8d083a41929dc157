package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wilo/internal/core/community"
)

type likeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a PostgreSQL like repository.
func NewLikeRepository(db *sql.DB) community.LikeRepository {
	return &likeRepo{db: db}
}

// Like inserts the (post, user) row and increments like_count as one unit.
// The unique constraint on (post_id, user_id) is the authoritative guard:
// under two concurrent likes from the same user exactly one insert wins, and
// only the winner increments the counter. The loser still reads the current
// count, so repeated calls return identical state.
func (r *likeRepo) Like(ctx context.Context, postID, userID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO community_post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert like: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check like insert: %w", err)
	}

	if inserted > 0 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE community_posts
			SET like_count = like_count + 1
			WHERE id = $1
		`, postID); err != nil {
			return 0, fmt.Errorf("failed to increment like count: %w", err)
		}
	}

	likeCount, err := currentLikeCount(ctx, tx, postID)
	if err != nil {
		return 0, err
	}

	return likeCount, tx.Commit()
}

// Unlike deletes the row and decrements like_count as one unit. Deleting a
// like that doesn't exist is a no-op; the counter never goes below zero.
func (r *likeRepo) Unlike(ctx context.Context, postID, userID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM community_post_likes
		WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete like: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check like delete: %w", err)
	}

	if deleted > 0 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE community_posts
			SET like_count = GREATEST(like_count - 1, 0)
			WHERE id = $1
		`, postID); err != nil {
			return 0, fmt.Errorf("failed to decrement like count: %w", err)
		}
	}

	likeCount, err := currentLikeCount(ctx, tx, postID)
	if err != nil {
		return 0, err
	}

	return likeCount, tx.Commit()
}

func currentLikeCount(ctx context.Context, tx *sql.Tx, postID int64) (int64, error) {
	var likeCount int64
	err := tx.QueryRowContext(ctx, `
		SELECT like_count FROM community_posts WHERE id = $1
	`, postID).Scan(&likeCount)
	if err == sql.ErrNoRows {
		return 0, community.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read like count: %w", err)
	}
	return likeCount, nil
}
