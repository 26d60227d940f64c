package ports

import (
	"context"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UpdateProfileInput carries the full replacement profile submitted by the
// user. Skills here replace the stored list; AddSkills merges instead.
type UpdateProfileInput struct {
	Name          string
	Bio           string
	LinkedInURL   string
	Skills        []string
	WalletAddress string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	// AddSkills unions skills into the profile without dropping existing ones.
	AddSkills(ctx context.Context, userID string, skills []string) (*domain.User, error)
}
