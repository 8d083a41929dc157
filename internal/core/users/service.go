package users

import (
	"context"
	"fmt"
	"unicode/utf8"
)

const (
	maxNicknameLength    = 30
	maxDescriptionLength = 120
	maxImageURLLength    = 512
)

type userService struct {
	repo Repository
}

// NewUserService creates a new user service.
func NewUserService(repo Repository) Service {
	return &userService{repo: repo}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil && *req.Nickname != user.Nickname {
		if *req.Nickname == "" || utf8.RuneCountInString(*req.Nickname) > maxNicknameLength {
			return nil, NewValidationError("nickname", fmt.Sprintf("must be 1-%d characters", maxNicknameLength))
		}
		taken, err := s.repo.ExistsByNickname(ctx, *req.Nickname)
		if err != nil {
			return nil, fmt.Errorf("failed to check nickname: %w", err)
		}
		if taken {
			return nil, ErrNicknameTaken
		}
		user.Nickname = *req.Nickname
	}

	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > maxDescriptionLength {
			return nil, NewValidationError("description", fmt.Sprintf("exceeds %d characters", maxDescriptionLength))
		}
		user.Description = req.Description
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	profile := user.ToProfile()
	return &profile, nil
}

func (s *userService) UpdateProfileImage(ctx context.Context, userID int64, imageURL string) (*Profile, error) {
	if len(imageURL) > maxImageURLLength {
		return nil, NewValidationError("profileImageUrl", fmt.Sprintf("exceeds %d characters", maxImageURLLength))
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		user.ProfileImageURL = nil
	} else {
		user.ProfileImageURL = &imageURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	profile := user.ToProfile()
	return &profile, nil
}
