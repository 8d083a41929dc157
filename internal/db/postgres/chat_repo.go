package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wilo/internal/core/chat"
)

type chatRepo struct {
	db *sql.DB
}

// NewChatRepository creates a PostgreSQL chat session/message repository.
func NewChatRepository(db *sql.DB) chat.Repository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateSession(ctx context.Context, session *chat.Session) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO chat_sessions (user_id, guest_id, chatbot_type_id, title, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, session.UserID, session.GuestID, session.BotTypeID, session.Title, session.Status).
		Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat session: %w", err)
	}
	return nil
}

func (r *chatRepo) GetSessionByID(ctx context.Context, id int64) (*chat.Session, error) {
	var s chat.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, guest_id, chatbot_type_id, title, status, last_message_at, created_at
		FROM chat_sessions
		WHERE id = $1 AND status != 'DELETED'
	`, id).Scan(
		&s.ID, &s.UserID, &s.GuestID, &s.BotTypeID,
		&s.Title, &s.Status, &s.LastMessageAt, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, chat.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &s, nil
}

// ListSessions pages by bare id: rows qualify when id < cursor, newest
// first. Ids are monotonic so this matches creation order.
func (r *chatRepo) ListSessions(ctx context.Context, owner chat.Owner, status chat.SessionStatus, cursor *int64, limit int) ([]*chat.Session, error) {
	conditions := "status = $1"
	args := []interface{}{status}

	if owner.UserID != nil {
		args = append(args, *owner.UserID)
		conditions += fmt.Sprintf(" AND user_id = $%d", len(args))
	} else {
		args = append(args, owner.GuestID)
		conditions += fmt.Sprintf(" AND user_id IS NULL AND guest_id = $%d", len(args))
	}

	if cursor != nil {
		args = append(args, *cursor)
		conditions += fmt.Sprintf(" AND id < $%d", len(args))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT id, user_id, guest_id, chatbot_type_id, title, status, last_message_at, created_at
		FROM chat_sessions
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d
	`, conditions, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*chat.Session
	for rows.Next() {
		var s chat.Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.GuestID, &s.BotTypeID,
			&s.Title, &s.Status, &s.LastMessageAt, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

func (r *chatRepo) ListMessages(ctx context.Context, sessionID int64, cursor *int64, limit int) ([]*chat.Message, error) {
	conditions := "session_id = $1"
	args := []interface{}{sessionID}

	if cursor != nil {
		args = append(args, *cursor)
		conditions += fmt.Sprintf(" AND id < $%d", len(args))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT id, session_id, sender_type, message_type, content, safety_status, choices_json, created_at
		FROM chat_messages
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d
	`, conditions, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(
			&m.ID, &m.SessionID, &m.SenderType, &m.MessageType,
			&m.Content, &m.SafetyStatus, &m.ChoicesJSON, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *chatRepo) MarkSessionDeleted(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE chat_sessions
		SET status = 'DELETED'
		WHERE id = $1 AND status != 'DELETED'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return chat.ErrSessionNotFound
	}
	return nil
}

func (r *chatRepo) GetBotTypeByID(ctx context.Context, id int64) (*chat.BotType, error) {
	var t chat.BotType
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, name, description, is_active
		FROM chatbot_types
		WHERE id = $1 AND is_active
	`, id).Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.Active)
	if err == sql.ErrNoRows {
		return nil, chat.ErrBotTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chatbot type: %w", err)
	}
	return &t, nil
}

func (r *chatRepo) ListActiveBotTypes(ctx context.Context) ([]*chat.BotType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, name, description, is_active
		FROM chatbot_types
		WHERE is_active
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chatbot types: %w", err)
	}
	defer rows.Close()

	var types []*chat.BotType
	for rows.Next() {
		var t chat.BotType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan chatbot type: %w", err)
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}
