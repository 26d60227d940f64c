package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

func seedUser(repo *stubUserRepo) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		Email:  "alice@example.com",
		Name:   "Alice",
		Skills: []string{"Go"},
	})
	return u
}

func TestProfileService_GetProfile(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(repo)
	svc := NewProfileService(repo, zerolog.Nop())

	user, err := svc.GetProfile(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.GetProfile(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileService_UpdateProfile_ReplacesFields(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(repo)
	svc := NewProfileService(repo, zerolog.Nop())

	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.UpdateProfileInput{
		Name:          "Alice B",
		Bio:           "Gopher",
		LinkedInURL:   "https://linkedin.com/in/aliceb",
		Skills:        []string{"Go", "Kubernetes"},
		WalletAddress: "0xWallet",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Alice B" || updated.Bio != "Gopher" || updated.WalletAddress != "0xWallet" {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if len(updated.Skills) != 2 {
		t.Errorf("skills must be replaced wholesale on profile update, got %v", updated.Skills)
	}
	if !updated.UpdatedAt.After(seeded.UpdatedAt) {
		t.Error("updated_at must advance")
	}
}

func TestProfileService_AddSkills_Unions(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(repo)
	svc := NewProfileService(repo, zerolog.Nop())

	updated, err := svc.AddSkills(context.Background(), seeded.ID, []string{"go", "Python", " ", "Teamwork"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Go", "Python", "Teamwork"}
	if len(updated.Skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, updated.Skills)
	}
	for i, s := range want {
		if updated.Skills[i] != s {
			t.Errorf("skills[%d]: want %q, got %q", i, s, updated.Skills[i])
		}
	}
}
