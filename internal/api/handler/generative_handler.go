package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainboard/job-board-api/internal/core/ports"
)

type GenerativeHandler struct {
	generativeService ports.GenerativeService
}

func NewGenerativeHandler(generativeService ports.GenerativeService) *GenerativeHandler {
	return &GenerativeHandler{generativeService: generativeService}
}

type matchScoreRequest struct {
	JobDescription string   `json:"jobDescription" validate:"required"`
	UserBio        string   `json:"userBio"        validate:"required"`
	UserSkills     []string `json:"userSkills"     validate:"required"`
}

type matchScoreResponse struct {
	MatchScore int    `json:"matchScore"`
	Rationale  string `json:"rationale"`
}

type suggestionsResponse struct {
	Suggestions []ports.JobSuggestion `json:"suggestions"`
}

type extractSkillsRequest struct {
	Text string `json:"text" validate:"required"`
}

type extractSkillsResponse struct {
	Skills []string `json:"skills"`
}

// MatchScore rates how well the caller's profile fits a job description.
//
// @Summary      Score a profile against a job description
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      matchScoreRequest  true  "Job description and profile"
// @Success      200   {object}  matchScoreResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /ai/match-score [post]
func (h *GenerativeHandler) MatchScore(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req matchScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.generativeService.MatchScore(c.Request().Context(), ports.MatchScoreInput{
		JobDescription: req.JobDescription,
		UserBio:        req.UserBio,
		UserSkills:     req.UserSkills,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, matchScoreResponse{
		MatchScore: result.MatchScore,
		Rationale:  result.Rationale,
	})
}

// SmartSuggestions recommends job titles based on the caller's profile and
// the current feed.
//
// @Summary      Suggest jobs for the caller
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  suggestionsResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /ai/smart-suggestions [get]
func (h *GenerativeHandler) SmartSuggestions(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	suggestions, err := h.generativeService.SuggestJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if suggestions == nil {
		suggestions = []ports.JobSuggestion{}
	}

	return c.JSON(http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}

// ExtractSkills pulls a skill list out of free-form text.
//
// @Summary      Extract skills from text
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      extractSkillsRequest  true  "Free-form text"
// @Success      200   {object}  extractSkillsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /ai/extract-skills [post]
func (h *GenerativeHandler) ExtractSkills(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req extractSkillsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skills, err := h.generativeService.ExtractSkills(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	if skills == nil {
		skills = []string{}
	}

	return c.JSON(http.StatusOK, extractSkillsResponse{Skills: skills})
}
