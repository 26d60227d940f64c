package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

type stubCompletion struct {
	reply      string
	err        error
	lastPrompt string
}

func (c *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func genFixture(reply string) (*GenerativeService, *stubCompletion, *stubUserRepo, *stubJobRepo) {
	client := &stubCompletion{reply: reply}
	users := newStubUserRepo()
	jobs := newStubJobRepo()
	return NewGenerativeService(client, users, jobs, zerolog.Nop()), client, users, jobs
}

func scoreInput() ports.MatchScoreInput {
	return ports.MatchScoreInput{
		JobDescription: "Senior Go engineer for payment systems",
		UserBio:        "Backend developer, 5 years",
		UserSkills:     []string{"Go", "MongoDB"},
	}
}

func TestMatchScore_ParsesPlainJSON(t *testing.T) {
	svc, client, _, _ := genFixture(`{"matchScore": 85, "rationale": "Strong Go overlap."}`)

	result, err := svc.MatchScore(context.Background(), scoreInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchScore != 85 {
		t.Errorf("expected score 85, got %d", result.MatchScore)
	}
	if result.Rationale != "Strong Go overlap." {
		t.Errorf("unexpected rationale: %q", result.Rationale)
	}
	if !strings.Contains(client.lastPrompt, "Senior Go engineer") {
		t.Error("prompt must embed the job description")
	}
	if !strings.Contains(client.lastPrompt, "Go, MongoDB") {
		t.Error("prompt must embed the joined skill list")
	}
}

func TestMatchScore_StripsCodeFences(t *testing.T) {
	svc, _, _, _ := genFixture("```json\n{\"matchScore\": 70, \"rationale\": \"ok\"}\n```")

	result, err := svc.MatchScore(context.Background(), scoreInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchScore != 70 {
		t.Errorf("expected score 70, got %d", result.MatchScore)
	}
}

func TestMatchScore_AcceptsQuotedScore(t *testing.T) {
	svc, _, _, _ := genFixture(`{"matchScore": "92", "rationale": "close match"}`)

	result, err := svc.MatchScore(context.Background(), scoreInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchScore != 92 {
		t.Errorf("expected score 92, got %d", result.MatchScore)
	}
}

func TestMatchScore_Unparseable(t *testing.T) {
	for _, reply := range []string{
		"I think this candidate is a great fit!",
		`{"matchScore": "high", "rationale": "ok"}`,
		`{"matchScore": 150, "rationale": "out of range"}`,
		`{"matchScore": 50}`,
	} {
		svc, _, _, _ := genFixture(reply)
		if _, err := svc.MatchScore(context.Background(), scoreInput()); !errors.Is(err, ports.ErrUnparseableResponse) {
			t.Errorf("reply %q: expected ErrUnparseableResponse, got %v", reply, err)
		}
	}
}

func TestSuggestJobs_ParsesList(t *testing.T) {
	svc, client, users, jobs := genFixture("```json\n[{\"title\":\"Platform Engineer\",\"reason\":\"Go background.\"},{\"title\":\"SRE\",\"reason\":\"Ops skills.\"}]\n```")
	user, _ := users.Create(context.Background(), &domain.User{Email: "a@b.com", Bio: "Gopher", Skills: []string{"Go"}})
	_, _ = jobs.Create(context.Background(), &domain.JobPosting{Title: "Platform Engineer", Description: "Infra work", Skills: []string{"Go"}})

	suggestions, err := svc.SuggestJobs(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Title != "Platform Engineer" {
		t.Errorf("unexpected first suggestion: %+v", suggestions[0])
	}
	if !strings.Contains(client.lastPrompt, "Bio: Gopher") {
		t.Error("prompt must embed the user profile")
	}
	if !strings.Contains(client.lastPrompt, "Title: Platform Engineer") {
		t.Error("prompt must embed the job sample")
	}
}

func TestSuggestJobs_UserNotFound(t *testing.T) {
	svc, _, _, _ := genFixture(`[]`)

	if _, err := svc.SuggestJobs(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSuggestJobs_UnparseableReply(t *testing.T) {
	svc, _, users, _ := genFixture("Here are some jobs you might like: ...")
	user, _ := users.Create(context.Background(), &domain.User{Email: "a@b.com"})

	if _, err := svc.SuggestJobs(context.Background(), user.ID); !errors.Is(err, ports.ErrUnparseableResponse) {
		t.Fatalf("expected ErrUnparseableResponse, got %v", err)
	}
}

func TestExtractSkills_SplitsAndTrims(t *testing.T) {
	svc, client, _, _ := genFixture("Python, Go , , teamwork,  communication ")

	skills, err := svc.ExtractSkills(context.Background(), "Skilled in Python, Go, and teamwork.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Python", "Go", "teamwork", "communication"}
	if len(skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, skills)
	}
	for i, s := range want {
		if skills[i] != s {
			t.Errorf("skills[%d]: want %q, got %q", i, s, skills[i])
		}
	}
	if !strings.Contains(client.lastPrompt, "Skilled in Python") {
		t.Error("prompt must embed the source text")
	}
}

func TestExtractSkills_CapsAtTen(t *testing.T) {
	svc, _, _, _ := genFixture("a,b,c,d,e,f,g,h,i,j,k,l,m")

	skills, err := svc.ExtractSkills(context.Background(), "long resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skills) != 10 {
		t.Errorf("expected cap of 10 skills, got %d", len(skills))
	}
}

func TestExtractSkills_DegradesToEmpty(t *testing.T) {
	svc, _, _, _ := genFixture("   ")

	skills, err := svc.ExtractSkills(context.Background(), "empty")
	if err != nil {
		t.Fatalf("extract must not fail on content: %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("expected empty list, got %v", skills)
	}
}
