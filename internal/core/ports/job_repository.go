package ports

import (
	"context"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

// JobFilter carries the browse-query parameters for listing jobs. String
// filters are case-insensitive partial matches; empty means no filter.
type JobFilter struct {
	Skill    string
	Tag      string
	Location string
	// ConfirmedOnly restricts the feed to payment-confirmed postings.
	ConfirmedOnly bool
	// Limit caps the number of rows returned; 0 means no cap.
	Limit int
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) (*domain.JobPosting, error)
	FindByID(ctx context.Context, id string) (*domain.JobPosting, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.JobPosting, error)
	// ListByPoster returns the poster's jobs, newest first.
	ListByPoster(ctx context.Context, userID string) ([]*domain.JobPosting, error)
	// ConfirmPayment atomically flips payment_confirmed from false to true and
	// records the confirming transaction hash, returning the updated posting.
	// It returns domain.ErrJobNotFound when no unconfirmed posting with that
	// id exists; the caller distinguishes "absent" from "already confirmed"
	// with a follow-up FindByID.
	ConfirmPayment(ctx context.Context, id, txHash string) (*domain.JobPosting, error)
}

// ClaimRepository records payment claims for the audit trail.
type ClaimRepository interface {
	Insert(ctx context.Context, claim *domain.PaymentClaim) error
}
