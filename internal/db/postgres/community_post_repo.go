package postgres

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wilo/internal/core/community"
)

// communityPostRepo persists posts, their ordered image lists, and runs the
// keyset-paginated feed queries.
//
// DATABASE INDEXES REQUIRED (created in migration 00002):
//
// 1. idx_community_posts_created ON community_posts(created_at DESC, id DESC) WHERE deleted_at IS NULL
//   - Covers the "latest" sort: chronological ordering + soft delete filter
//
// 2. idx_community_posts_like_count ON community_posts(like_count DESC, created_at DESC, id DESC) WHERE deleted_at IS NULL
//   - Covers the "recommended" sort including both tie-breaks
//
// Cursor pagination is stable under concurrent inserts and like churn: a row
// qualifies for the next page purely by comparison against the last returned
// sort key, so pages never skip or duplicate relative to that predicate.
// Posts that change sort key after being paged past are an accepted
// trade-off of keyset pagination.
type communityPostRepo struct {
	db *sql.DB
}

// NewCommunityPostRepository creates a PostgreSQL post repository.
func NewCommunityPostRepository(db *sql.DB) community.PostRepository {
	return &communityPostRepo{db: db}
}

// sortClauses maps sort types to safe SQL ORDER BY clauses.
// Whitelist map prevents SQL injection via dynamic ORDER BY construction.
var sortClauses = map[community.SortType]string{
	community.SortLatest:      `p.created_at DESC, p.id DESC`,
	community.SortRecommended: `p.like_count DESC, p.created_at DESC, p.id DESC`,
}

const postColumns = `p.id, p.user_id, p.category, p.title, p.content,
		p.view_count, p.like_count, p.comment_count, p.created_at, p.deleted_at`

// Create inserts the post and its images in one transaction.
func (r *communityPostRepo) Create(ctx context.Context, post *community.Post, imageURLs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO community_posts (user_id, category, title, content, view_count, like_count, comment_count)
		VALUES ($1, $2, $3, $4, 0, 0, 0)
		RETURNING id, created_at
	`, post.UserID, post.Category, post.Title, post.Content).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if err := insertImages(ctx, tx, post.ID, imageURLs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns a live post. Soft-deleted rows are filtered here so every
// caller sees the same "absent or deleted == not found" behavior.
func (r *communityPostRepo) GetByID(ctx context.Context, id int64) (*community.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM community_posts p
		WHERE p.id = $1 AND p.deleted_at IS NULL
	`, postColumns)

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, community.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// Update rewrites the mutable fields and fully replaces the image list,
// re-establishing sort order from the given list's order.
func (r *communityPostRepo) Update(ctx context.Context, post *community.Post, imageURLs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE community_posts
		SET category = $1, title = $2, content = $3
		WHERE id = $4 AND deleted_at IS NULL
	`, post.Category, post.Title, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return community.ErrPostNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM community_post_images WHERE post_id = $1`, post.ID); err != nil {
		return fmt.Errorf("failed to clear post images: %w", err)
	}

	if err := insertImages(ctx, tx, post.ID, imageURLs); err != nil {
		return err
	}

	return tx.Commit()
}

// SoftDeleteCascade hard-deletes the post's children and tombstones the post
// row, all in one transaction. Racing deletes are benign: the loser sees
// zero rows affected and reports not found.
func (r *communityPostRepo) SoftDeleteCascade(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"community_comments", "community_post_likes", "community_post_images"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE post_id = $1`, table), postID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE community_posts
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, postID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return community.ErrPostNotFound
	}

	return tx.Commit()
}

// List runs one feed query with the limit+1 pattern: fetching size+1 rows
// answers "has next page" without a second query, and the extra row is
// dropped before the cursor is built from the last *returned* row.
func (r *communityPostRepo) List(ctx context.Context, q community.ListPostsQuery) ([]*community.Post, *string, error) {
	conditions := []string{"p.deleted_at IS NULL"}
	args := []interface{}{}

	if q.Category != nil {
		args = append(args, *q.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}

	if q.Keyword != "" {
		args = append(args, "%"+strings.ToLower(q.Keyword)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.title) LIKE $%d OR LOWER(p.content) LIKE $%d)", n, n))
	}

	// Filters come before cursor qualification and before the limit, so a
	// filtered feed still fills whole pages until true end-of-data.
	if filter, values := parseFeedCursor(q.Cursor, q.Sort, len(args)+1); filter != "" {
		conditions = append(conditions, filter)
		args = append(args, values...)
	}

	args = append(args, q.Size+1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM community_posts p
		WHERE %s
		ORDER BY %s
		LIMIT $%d
	`, postColumns, strings.Join(conditions, " AND "), sortClauses[q.Sort], len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*community.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating posts: %w", err)
	}

	var nextCursor *string
	if len(posts) > q.Size {
		posts = posts[:q.Size]
		cursor := buildFeedCursor(posts[len(posts)-1], q.Sort)
		nextCursor = &cursor
	}

	return posts, nextCursor, nil
}

// GetImages returns the post's image URLs in sort order.
func (r *communityPostRepo) GetImages(ctx context.Context, postID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT image_url
		FROM community_post_images
		WHERE post_id = $1
		ORDER BY sort_order ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query post images: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan image URL: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// IncrementViewCount bumps view_count unconditionally; there is no dedup by
// viewer.
func (r *communityPostRepo) IncrementViewCount(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE community_posts
		SET view_count = view_count + 1
		WHERE id = $1 AND deleted_at IS NULL
	`, postID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// parseFeedCursor decodes the opaque continuation token into a qualification
// predicate. paramOffset is the next free placeholder number.
//
// Cursor payloads (base64url):
//
//	latest:      createdAt|id
//	recommended: likeCount|createdAt|id
//
// Malformed or structurally invalid cursors are deliberately treated as "no
// cursor" and fall back to page one instead of surfacing an error. That also
// covers a well-formed cursor submitted against the other sort: its part
// count fails validation here and the feed restarts from the top.
func parseFeedCursor(cursor *string, sort community.SortType, paramOffset int) (string, []interface{}) {
	if cursor == nil || *cursor == "" {
		return "", nil
	}

	decoded, err := base64.URLEncoding.DecodeString(*cursor)
	if err != nil {
		return "", nil
	}
	parts := strings.Split(string(decoded), "|")

	switch sort {
	case community.SortRecommended:
		if len(parts) != 3 {
			return "", nil
		}
		likeCount, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return "", nil
		}
		createdAt, err := time.Parse(time.RFC3339Nano, parts[1])
		if err != nil {
			return "", nil
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return "", nil
		}

		filter := fmt.Sprintf(`(p.like_count < $%d
			OR (p.like_count = $%d AND p.created_at < $%d)
			OR (p.like_count = $%d AND p.created_at = $%d AND p.id < $%d))`,
			paramOffset, paramOffset, paramOffset+1, paramOffset, paramOffset+1, paramOffset+2)
		return filter, []interface{}{likeCount, createdAt, id}

	default: // latest
		if len(parts) != 2 {
			return "", nil
		}
		createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return "", nil
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return "", nil
		}

		filter := fmt.Sprintf(`(p.created_at < $%d OR (p.created_at = $%d AND p.id < $%d))`,
			paramOffset, paramOffset, paramOffset+1)
		return filter, []interface{}{createdAt, id}
	}
}

// buildFeedCursor encodes the sort key of the last row of the returned page.
// The id tie-break keeps the order total even when rows share a timestamp.
func buildFeedCursor(post *community.Post, sort community.SortType) string {
	const delimiter = "|"

	var payload string
	switch sort {
	case community.SortRecommended:
		payload = strconv.FormatInt(post.LikeCount, 10) + delimiter +
			post.CreatedAt.Format(time.RFC3339Nano) + delimiter +
			strconv.FormatInt(post.ID, 10)
	default:
		payload = post.CreatedAt.Format(time.RFC3339Nano) + delimiter +
			strconv.FormatInt(post.ID, 10)
	}

	return base64.URLEncoding.EncodeToString([]byte(payload))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*community.Post, error) {
	var post community.Post
	err := row.Scan(
		&post.ID, &post.UserID, &post.Category, &post.Title, &post.Content,
		&post.ViewCount, &post.LikeCount, &post.CommentCount,
		&post.CreatedAt, &post.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func insertImages(ctx context.Context, tx *sql.Tx, postID int64, imageURLs []string) error {
	for i, url := range imageURLs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO community_post_images (post_id, image_url, sort_order)
			VALUES ($1, $2, $3)
		`, postID, url, i); err != nil {
			return fmt.Errorf("failed to insert post image: %w", err)
		}
	}
	return nil
}
