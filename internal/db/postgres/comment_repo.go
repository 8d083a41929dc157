package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wilo/internal/core/community"
)

type commentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a PostgreSQL comment repository.
func NewCommentRepository(db *sql.DB) community.CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts the comment and bumps the post's comment_count in the same
// transaction, so no reader can observe one without the other.
func (r *commentRepo) Create(ctx context.Context, comment *community.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO community_comments (post_id, user_id, parent_comment_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, comment.PostID, comment.UserID, comment.ParentID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE community_posts
		SET comment_count = comment_count + 1
		WHERE id = $1
	`, comment.PostID); err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	return tx.Commit()
}

// GetByID returns a comment by id.
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*community.Comment, error) {
	var comment community.Comment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, post_id, user_id, parent_comment_id, content, created_at
		FROM community_comments
		WHERE id = $1
	`, id).Scan(
		&comment.ID, &comment.PostID, &comment.UserID,
		&comment.ParentID, &comment.Content, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, community.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListByPost returns the post's comments with author summaries in the order
// the tree builder expects: (created_at asc, id asc).
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]community.CommentWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.post_id, c.user_id, c.parent_comment_id, c.content, c.created_at,
			u.id, u.nickname, u.profile_image_url
		FROM community_comments c
		INNER JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []community.CommentWithAuthor
	for rows.Next() {
		var c community.CommentWithAuthor
		var profileImage sql.NullString
		err := rows.Scan(
			&c.Comment.ID, &c.Comment.PostID, &c.Comment.UserID,
			&c.Comment.ParentID, &c.Comment.Content, &c.Comment.CreatedAt,
			&c.Author.ID, &c.Author.Nickname, &profileImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if profileImage.Valid {
			c.Author.ProfileImageURL = &profileImage.String
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
