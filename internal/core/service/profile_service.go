package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

type ProfileService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile replaces the mutable profile fields with the submitted ones.
// Unlike AddSkills, the skills list here is taken as-is: the profile editor
// sends the full list, removals included.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Bio = input.Bio
	user.LinkedInURL = input.LinkedInURL
	user.WalletAddress = input.WalletAddress
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return nil, err
	}
	return updated, nil
}

// AddSkills unions extracted skills into the profile. Existing entries are
// kept; duplicates (case-insensitive) are dropped.
func (s *ProfileService) AddSkills(ctx context.Context, userID string, skills []string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.MergeSkills(skills)
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to merge skills")
		return nil, err
	}
	return updated, nil
}
