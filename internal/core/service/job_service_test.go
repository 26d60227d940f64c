package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/ports"
)

func minimalJobInput() ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		Skills:       []string{"Go", "MongoDB"},
		Compensation: "$120k",
		PostedBy:     "user1",
		PosterEmail:  "poster@example.com",
	}
}

func TestJobService_Create_Defaults(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, false, zerolog.Nop())

	job, err := svc.CreateJob(context.Background(), minimalJobInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Location != "Remote" {
		t.Errorf("empty location must default to Remote, got %q", job.Location)
	}
	if job.Tags == nil || len(job.Tags) != 0 {
		t.Errorf("tags must default to an empty list, got %v", job.Tags)
	}
	if job.PaymentConfirmed {
		t.Error("new postings must start unconfirmed")
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestJobService_Create_KeepsExplicitLocation(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, false, zerolog.Nop())

	in := minimalJobInput()
	in.Location = "Berlin"
	in.Tags = []string{"onsite"}

	job, err := svc.CreateJob(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Location != "Berlin" {
		t.Errorf("explicit location must be kept, got %q", job.Location)
	}
	if len(job.Tags) != 1 || job.Tags[0] != "onsite" {
		t.Errorf("tags must be kept, got %v", job.Tags)
	}
}

func TestJobService_ListJobs_FeedVisibilityFlag(t *testing.T) {
	repo := newStubJobRepo()

	_, _ = NewJobService(repo, false, zerolog.Nop()).CreateJob(context.Background(), minimalJobInput())
	confirmed, _ := NewJobService(repo, false, zerolog.Nop()).CreateJob(context.Background(), minimalJobInput())
	if _, err := repo.ConfirmPayment(context.Background(), confirmed.ID, "0xabc"); err != nil {
		t.Fatalf("seed confirm: %v", err)
	}

	open := NewJobService(repo, false, zerolog.Nop())
	all, err := open.ListJobs(context.Background(), ports.ListJobsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("open feed must include unpaid postings, got %d", len(all))
	}

	gated := NewJobService(repo, true, zerolog.Nop())
	live, err := gated.ListJobs(context.Background(), ports.ListJobsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 1 || !live[0].PaymentConfirmed {
		t.Errorf("gated feed must only include confirmed postings, got %d", len(live))
	}
}

func TestJobService_ListUserPosts(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, false, zerolog.Nop())

	_, _ = svc.CreateJob(context.Background(), minimalJobInput())
	other := minimalJobInput()
	other.PostedBy = "user2"
	_, _ = svc.CreateJob(context.Background(), other)

	posts, err := svc.ListUserPosts(context.Background(), "user1")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].PostedBy != "user1" {
		t.Errorf("expected only user1's posts, got %d", len(posts))
	}
}
