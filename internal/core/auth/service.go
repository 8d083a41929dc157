package auth

import (
	"context"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"wilo/internal/core/users"
)

// SignUpRequest registers a new account.
type SignUpRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Nickname        string  `json:"nickname"`
	Description     *string `json:"description,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the signup/login response: who you are plus your tokens.
type AuthResult struct {
	User   users.Profile `json:"user"`
	Tokens TokenPair     `json:"tokens"`
}

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
	maxNicknameLength = 30
)

type authService struct {
	userRepo users.Repository
	tokens   *TokenProvider
	refresh  RefreshTokenStore
}

// NewService creates the auth service.
func NewService(userRepo users.Repository, tokens *TokenProvider, refresh RefreshTokenStore) Service {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		refresh:  refresh,
	}
}

func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	if err := validateSignUp(req); err != nil {
		return nil, err
	}

	if taken, err := s.userRepo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, users.ErrEmailTaken
	}

	if taken, err := s.userRepo.ExistsByNickname(ctx, req.Nickname); err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	} else if taken {
		return nil, users.ErrNicknameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		Email:           req.Email,
		Password:        string(hash),
		Nickname:        req.Nickname,
		Description:     req.Description,
		ProfileImageURL: req.ProfileImageURL,
	}

	// The unique constraints on email/nickname remain the authoritative
	// guard against signup races; the checks above just give clean errors.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == users.ErrUserNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID int64) error {
	if err := s.refresh.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := s.refresh.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if stored != refreshToken {
		return nil, ErrRefreshTokenMismatch
	}

	pair, err := s.issueTokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) issue(ctx context.Context, user *users.User) (*AuthResult, error) {
	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.ToProfile(), Tokens: *pair}, nil
}

func (s *authService) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refresh.Save(ctx, userID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func validateSignUp(req SignUpRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return users.NewValidationError("email", "invalid email address")
	}
	if n := len(req.Password); n < minPasswordLength || n > maxPasswordLength {
		return users.NewValidationError("password", fmt.Sprintf("must be %d-%d characters", minPasswordLength, maxPasswordLength))
	}
	if req.Nickname == "" || utf8.RuneCountInString(req.Nickname) > maxNicknameLength {
		return users.NewValidationError("nickname", fmt.Sprintf("must be 1-%d characters", maxNicknameLength))
	}
	return nil
}
