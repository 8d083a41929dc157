package chat

import "context"

// Service defines ownership-scoped chat session CRUD. Unlike the community
// feed this list pages by bare id cursors and rejects out-of-range
// parameters instead of clamping.
type Service interface {
	// CreateSession opens an ACTIVE session for the owner and bot type.
	CreateSession(ctx context.Context, owner Owner, req CreateSessionRequest) (*Session, error)

	// ListSessions returns the owner's sessions newest-first by id.
	// Cursor must be positive when present; size must be 1-50 (default 20).
	ListSessions(ctx context.Context, owner Owner, status *SessionStatus, cursor *int64, size *int) (*SessionListResponse, error)

	// GetSessionDetail returns the session and one page of messages by
	// id descending. Size must be 1-100 (default 30).
	GetSessionDetail(ctx context.Context, sessionID int64, owner Owner, cursor *int64, size *int) (*SessionDetailResponse, error)

	// DeleteSession marks the session DELETED. Owner only.
	DeleteSession(ctx context.Context, sessionID int64, owner Owner) error

	// ListBotTypes returns the active chatbot catalog.
	ListBotTypes(ctx context.Context) ([]*BotType, error)
}

// Repository is the durable session/message store.
type Repository interface {
	CreateSession(ctx context.Context, session *Session) error

	// GetSessionByID returns any non-deleted session regardless of owner;
	// the service enforces ownership.
	GetSessionByID(ctx context.Context, id int64) (*Session, error)

	// ListSessions pages the owner's sessions by id descending using the
	// limit+1 pattern; cursor bounds ids strictly below it.
	ListSessions(ctx context.Context, owner Owner, status SessionStatus, cursor *int64, limit int) ([]*Session, error)

	// ListMessages pages a session's messages by id descending.
	ListMessages(ctx context.Context, sessionID int64, cursor *int64, limit int) ([]*Message, error)

	// MarkSessionDeleted flips status to DELETED.
	MarkSessionDeleted(ctx context.Context, id int64) error

	// GetBotTypeByID returns an active bot type or ErrBotTypeNotFound.
	GetBotTypeByID(ctx context.Context, id int64) (*BotType, error)

	// ListActiveBotTypes returns the active catalog in id order.
	ListActiveBotTypes(ctx context.Context) ([]*BotType, error)
}
