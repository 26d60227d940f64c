package ports

import (
	"context"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// UserRepository defines profile-level persistence for existing users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists the mutable profile fields (name, bio, linkedin_url,
	// skills, wallet_address) and bumps updated_at.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
