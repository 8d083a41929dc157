package community

import "time"

// BuildCommentTree reconstructs the two-level reply forest from a post's
// flat comment list. The input must already be ordered by
// (created_at asc, id asc); that order is preserved for roots and for each
// reply list.
//
// A comment whose parent is missing from the list (hard-deleted out of
// band) is promoted to a root rather than dropped.
func BuildCommentTree(comments []CommentWithAuthor, now time.Time) []*CommentNode {
	index := make(map[int64]*CommentNode, len(comments))
	for _, c := range comments {
		index[c.Comment.ID] = &CommentNode{
			ID:        c.Comment.ID,
			Author:    c.Author,
			Content:   c.Comment.Content,
			CreatedAt: c.Comment.CreatedAt,
			DaysAgo:   daysAgo(c.Comment.CreatedAt, now),
			Replies:   []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		node := index[c.Comment.ID]

		if c.Comment.ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := index[*c.Comment.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}

		parent.Replies = append(parent.Replies, node)
	}

	return roots
}
