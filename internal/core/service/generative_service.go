package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/api/metrics"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

// maxExtractedSkills caps the skill list returned by ExtractSkills.
const maxExtractedSkills = 10

// suggestionJobSample is how many recent postings are fed to the model as
// context for smart suggestions.
const suggestionJobSample = 50

type GenerativeService struct {
	client ports.TextCompletionClient
	users  ports.UserRepository
	jobs   ports.JobRepository
	logger zerolog.Logger
}

func NewGenerativeService(
	client ports.TextCompletionClient,
	users ports.UserRepository,
	jobs ports.JobRepository,
	logger zerolog.Logger,
) *GenerativeService {
	return &GenerativeService{client: client, users: users, jobs: jobs, logger: logger}
}

// MatchScore asks the model to compare a user profile against a job
// description and returns its 0-100 verdict with a rationale.
func (s *GenerativeService) MatchScore(ctx context.Context, input ports.MatchScoreInput) (*ports.MatchScoreResult, error) {
	profile := fmt.Sprintf("Bio: %s\nSkills: %s", input.UserBio, strings.Join(input.UserSkills, ", "))

	prompt := fmt.Sprintf(`Act as an expert job recruiter. Compare the following user profile with the job description.

Provide a 'match score' from 0 to 100 based on skill relevance, experience, and keywords. Also, provide a brief 'rationale' explaining the score, mentioning key matching points and any major missing skills.

Job Description:
"""
%s
"""

User Profile:
"""
%s
"""

Please provide the response in a JSON object with the following structure:
{ "matchScore": "integer", "rationale": "string" }`, input.JobDescription, profile)

	reply, err := s.client.Complete(ctx, prompt)
	if err != nil {
		metrics.GenerativeCallsTotal.WithLabelValues("match_score", "error").Inc()
		return nil, err
	}

	result, err := parseMatchScore(reply)
	if err != nil {
		metrics.GenerativeCallsTotal.WithLabelValues("match_score", "unparseable").Inc()
		s.logger.Error().Str("reply", reply).Msg("match score reply did not parse")
		return nil, err
	}

	metrics.GenerativeCallsTotal.WithLabelValues("match_score", "ok").Inc()
	return result, nil
}

// SuggestJobs builds the caller's profile plus a sample of recent postings
// into one prompt and parses the model's recommendations.
func (s *GenerativeService) SuggestJobs(ctx context.Context, userID string) ([]ports.JobSuggestion, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.List(ctx, ports.JobFilter{Limit: suggestionJobSample})
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `Based on the following user profile, recommend 3 to 5 relevant job titles.
For each recommendation, provide a brief, one-sentence explanation of why it's a good fit.
Only return a JSON array of objects with the following structure, do not include any other text or explanation:
[
  { "title": "Job Title", "reason": "Explanation" },
  ...
]

User Profile:
"""
Bio: %s
Skills: %s
"""

Here are some jobs to consider:

`, user.Bio, strings.Join(user.Skills, ", "))

	for i, job := range jobs {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "Job ID: %s\nTitle: %s\nSkills: %s\nDescription: %s",
			job.ID, job.Title, strings.Join(job.Skills, ", "), job.Description)
	}

	reply, err := s.client.Complete(ctx, sb.String())
	if err != nil {
		metrics.GenerativeCallsTotal.WithLabelValues("smart_suggestions", "error").Inc()
		return nil, err
	}

	var suggestions []ports.JobSuggestion
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &suggestions); err != nil {
		metrics.GenerativeCallsTotal.WithLabelValues("smart_suggestions", "unparseable").Inc()
		s.logger.Error().Str("reply", reply).Msg("suggestions reply did not parse")
		return nil, ports.ErrUnparseableResponse
	}

	metrics.GenerativeCallsTotal.WithLabelValues("smart_suggestions", "ok").Inc()
	return suggestions, nil
}

// ExtractSkills pulls skills out of free text (a resume, usually). The reply
// is treated as a comma-separated list; there is no parse-failure mode.
func (s *GenerativeService) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract all key technical and soft skills from the following text.
Return the skills as a comma-separated list of single words or short phrases.
Do not include any other text, formatting, or explanations in your response.

Text:
"""
%s
"""`, text)

	reply, err := s.client.Complete(ctx, prompt)
	if err != nil {
		metrics.GenerativeCallsTotal.WithLabelValues("extract_skills", "error").Inc()
		return nil, err
	}

	skills := make([]string, 0, maxExtractedSkills)
	for _, token := range strings.Split(stripCodeFences(reply), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		skills = append(skills, token)
		if len(skills) == maxExtractedSkills {
			break
		}
	}

	metrics.GenerativeCallsTotal.WithLabelValues("extract_skills", "ok").Inc()
	return skills, nil
}

// stripCodeFences removes Markdown fence markers the model sometimes wraps
// JSON replies in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseMatchScore decodes the model's reply. The prompt shows the score as
// "integer", so some models quote it; a JSON number or a numeric string are
// both accepted, anything else is unparseable.
func parseMatchScore(reply string) (*ports.MatchScoreResult, error) {
	var raw struct {
		MatchScore any    `json:"matchScore"`
		Rationale  string `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &raw); err != nil {
		return nil, ports.ErrUnparseableResponse
	}

	score, ok := coerceScore(raw.MatchScore)
	if !ok || score < 0 || score > 100 {
		return nil, ports.ErrUnparseableResponse
	}
	if raw.Rationale == "" {
		return nil, ports.ErrUnparseableResponse
	}

	return &ports.MatchScoreResult{MatchScore: score, Rationale: raw.Rationale}, nil
}

func coerceScore(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
