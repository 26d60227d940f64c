package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/api/metrics"
	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

// feedLimit caps how many postings a single browse query returns.
const feedLimit = 100

type JobService struct {
	repo ports.JobRepository
	// confirmedOnly hides unpaid postings from the public feed. The product
	// has not settled this, so it stays a configuration flip.
	confirmedOnly bool
	logger        zerolog.Logger
}

func NewJobService(repo ports.JobRepository, confirmedOnly bool, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, confirmedOnly: confirmedOnly, logger: logger}
}

// CreateJob submits a new posting. It starts unconfirmed and goes live only
// once the platform fee is verified.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*domain.JobPosting, error) {
	location := input.Location
	if location == "" {
		location = domain.DefaultLocation
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	job := &domain.JobPosting{
		Title:        input.Title,
		Description:  input.Description,
		Skills:       input.Skills,
		Compensation: input.Compensation,
		Location:     location,
		Tags:         tags,
		PostedBy:     input.PostedBy,
		PosterEmail:  input.PosterEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	metrics.JobsCreatedTotal.Inc()
	s.logger.Info().Str("job_id", created.ID).Str("posted_by", created.PostedBy).Msg("job created, awaiting payment")
	return created, nil
}

// ListJobs returns the public feed, optionally narrowed by skill, tag or
// location (case-insensitive partial matches).
func (s *JobService) ListJobs(ctx context.Context, input ports.ListJobsInput) ([]*domain.JobPosting, error) {
	return s.repo.List(ctx, ports.JobFilter{
		Skill:         input.Skill,
		Tag:           input.Tag,
		Location:      input.Location,
		ConfirmedOnly: s.confirmedOnly,
		Limit:         feedLimit,
	})
}

// ListUserPosts returns the caller's own postings, newest first, unpaid ones
// included so the poster can see what still needs a fee.
func (s *JobService) ListUserPosts(ctx context.Context, userID string) ([]*domain.JobPosting, error) {
	return s.repo.ListByPoster(ctx, userID)
}
