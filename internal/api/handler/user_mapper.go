package handler

import "github.com/chainboard/job-board-api/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Bio:           u.Bio,
		LinkedInURL:   u.LinkedInURL,
		Skills:        skills,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt.UTC(),
	}
}
