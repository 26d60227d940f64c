package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name          string   `json:"name"`
	Bio           string   `json:"bio"`
	LinkedInURL   string   `json:"linkedinUrl"   validate:"omitempty,url"`
	WalletAddress string   `json:"walletAddress"`
	Skills        []string `json:"skills"`
}

type addSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,min=1"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal service changes.

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	LinkedInURL   string    `json:"linkedinUrl,omitempty"`
	Skills        []string  `json:"skills"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

type dashboardResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}
