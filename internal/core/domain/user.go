package domain

import (
	"strings"
	"time"
)

// User models a registered account on the board.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	Bio           string    `json:"bio"`
	LinkedInURL   string    `json:"linkedin_url"`
	Skills        []string  `json:"skills"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MergeSkills unions incoming skills into the user's list, preserving order of
// first appearance. Comparison is case-insensitive on the trimmed token; empty
// tokens are dropped. Existing skills are never removed.
func (u *User) MergeSkills(incoming []string) {
	seen := make(map[string]struct{}, len(u.Skills))
	for _, s := range u.Skills {
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range incoming {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		u.Skills = append(u.Skills, trimmed)
	}
}
