package chat

import (
	"context"
	"fmt"
)

const (
	defaultSessionPageSize = 20
	maxSessionPageSize     = 50
	defaultMessagePageSize = 30
	maxMessagePageSize     = 100
	defaultSessionTitle    = "New conversation"
)

type chatService struct {
	repo Repository
}

// NewService creates the chat session service.
func NewService(repo Repository) Service {
	return &chatService{repo: repo}
}

func (s *chatService) CreateSession(ctx context.Context, owner Owner, req CreateSessionRequest) (*Session, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}

	botType, err := s.repo.GetBotTypeByID(ctx, req.ChatbotTypeID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		UserID:    owner.UserID,
		BotTypeID: botType.ID,
		Title:     defaultSessionTitle,
		Status:    StatusActive,
	}
	if owner.UserID == nil {
		guestID := owner.GuestID
		session.GuestID = &guestID
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return session, nil
}

func (s *chatService) ListSessions(ctx context.Context, owner Owner, status *SessionStatus, cursor *int64, size *int) (*SessionListResponse, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}

	// Defaults to ACTIVE; listing deleted sessions is not a thing.
	listStatus := StatusActive
	if status != nil {
		switch *status {
		case StatusActive, StatusEnded:
			listStatus = *status
		default:
			return nil, ErrInvalidParameter
		}
	}

	pageSize, err := validatePage(cursor, size, defaultSessionPageSize, maxSessionPageSize)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListSessions(ctx, owner, listStatus, cursor, pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	resp := &SessionListResponse{Items: sessions}
	if len(sessions) > pageSize {
		resp.Items = sessions[:pageSize]
		resp.HasNext = true
		last := resp.Items[len(resp.Items)-1].ID
		resp.NextCursor = &last
	}
	if resp.Items == nil {
		resp.Items = []*Session{}
	}

	return resp, nil
}

func (s *chatService) GetSessionDetail(ctx context.Context, sessionID int64, owner Owner, cursor *int64, size *int) (*SessionDetailResponse, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}

	pageSize, err := validatePage(cursor, size, defaultMessagePageSize, maxMessagePageSize)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !owner.Owns(session) {
		return nil, ErrForbidden
	}

	messages, err := s.repo.ListMessages(ctx, sessionID, cursor, pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	resp := &SessionDetailResponse{Session: session, Messages: messages}
	if len(messages) > pageSize {
		resp.Messages = messages[:pageSize]
		resp.HasNext = true
		last := resp.Messages[len(resp.Messages)-1].ID
		resp.NextCursor = &last
	}
	if resp.Messages == nil {
		resp.Messages = []*Message{}
	}

	return resp, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID int64, owner Owner) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if !owner.Owns(session) {
		return ErrForbidden
	}

	if err := s.repo.MarkSessionDeleted(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}

	return nil
}

func (s *chatService) ListBotTypes(ctx context.Context) ([]*BotType, error) {
	types, err := s.repo.ListActiveBotTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chatbot types: %w", err)
	}
	return types, nil
}

// validatePage enforces the chat module's strict paging rules: unlike the
// community feed, out-of-range values are rejected rather than clamped.
func validatePage(cursor *int64, size *int, def, max int) (int, error) {
	pageSize := def
	if size != nil {
		if *size < 1 || *size > max {
			return 0, ErrInvalidParameter
		}
		pageSize = *size
	}
	if cursor != nil && *cursor <= 0 {
		return 0, ErrInvalidParameter
	}
	return pageSize, nil
}
