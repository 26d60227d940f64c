package ports

import (
	"context"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

// CreateJobInput carries all data needed to submit a new posting. The posting
// starts unconfirmed; it goes live once the platform fee is verified.
type CreateJobInput struct {
	Title        string
	Description  string
	Skills       []string
	Compensation string
	Location     string
	Tags         []string
	PostedBy     string
	PosterEmail  string
}

// ListJobsInput carries the browse parameters accepted by the feed endpoints.
type ListJobsInput struct {
	Skill    string
	Tag      string
	Location string
}

// JobService defines use-case operations for job postings.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.JobPosting, error)
	ListJobs(ctx context.Context, input ListJobsInput) ([]*domain.JobPosting, error)
	ListUserPosts(ctx context.Context, userID string) ([]*domain.JobPosting, error)
}

// ConfirmPaymentInput is a payment claim as submitted by the poster.
type ConfirmPaymentInput struct {
	JobID  string
	TxHash string
}

// PaymentService verifies a claimed on-chain fee payment and, on success,
// marks the job as live.
type PaymentService interface {
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*domain.JobPosting, error)
}
