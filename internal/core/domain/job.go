package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultLocation is applied when a posting carries no location of its own.
const DefaultLocation = "Remote"

// JobPosting is a job listing. It exists from the moment it is submitted, but
// is only a live offer once PaymentConfirmed is set by the payment verifier.
type JobPosting struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Skills           []string  `json:"skills"`
	Compensation     string    `json:"compensation"`
	Location         string    `json:"location"`
	Tags             []string  `json:"tags"`
	PostedBy         string    `json:"posted_by"`
	PosterEmail      string    `json:"poster_email"`
	PaymentConfirmed bool      `json:"payment_confirmed"`
	PaymentTxHash    string    `json:"payment_tx_hash,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
