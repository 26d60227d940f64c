package ports

import (
	"context"
	"errors"
)

// ErrUnparseableResponse is returned when the model's reply does not conform
// to the structure the prompt asked for, even after stripping code fences.
var ErrUnparseableResponse = errors.New("model returned an unparseable response")

// TextCompletionClient is a single-shot call to an external text-completion
// endpoint. The prompt goes out, free-form text comes back; everything else
// (endpoint, model, credential) lives behind the implementation.
type TextCompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MatchScoreInput pairs a job description with a candidate profile.
type MatchScoreInput struct {
	JobDescription string
	UserBio        string
	UserSkills     []string
}

// MatchScoreResult is the model's verdict on a candidate/job pairing.
type MatchScoreResult struct {
	MatchScore int    `json:"matchScore"`
	Rationale  string `json:"rationale"`
}

// JobSuggestion is one recommended job title with a one-sentence reason.
type JobSuggestion struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// GenerativeService wraps the text-completion endpoint with prompt templating
// and reply parsing. No retries, no rate limiting: a failed or malformed call
// surfaces directly to the caller.
type GenerativeService interface {
	MatchScore(ctx context.Context, input MatchScoreInput) (*MatchScoreResult, error)
	SuggestJobs(ctx context.Context, userID string) ([]JobSuggestion, error)
	// ExtractSkills never fails on content: the reply is treated as a
	// comma-separated list and degrades to a possibly-empty slice.
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}
