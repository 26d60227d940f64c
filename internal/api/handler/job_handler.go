package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainboard/job-board-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings and the public feed.
type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create submits a new job posting. The posting stays unconfirmed until the
// platform fee payment is verified.
//
// @Summary      Create a job posting
// @Tags         job
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /job/create-job [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, _ := c.Get("email").(string)
	job, err := h.jobService.CreateJob(c.Request().Context(), ports.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Skills:       req.Skills,
		Compensation: req.Compensation,
		Location:     req.Location,
		Tags:         req.Tags,
		PostedBy:     userID,
		PosterEmail:  email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// List returns the job feed, newest first.
//
// @Summary      List jobs
// @Tags         job
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListResponse
// @Failure      401  {object}  errorResponse
// @Router       /job/get-jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), ports.ListJobsInput{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// ListBySkill filters the feed by a case-insensitive skill match.
//
// @Summary      List jobs by skill
// @Tags         job
// @Produce      json
// @Security     BearerAuth
// @Param        skill  path      string  true  "Skill to match"
// @Success      200    {object}  jobListResponse
// @Failure      401    {object}  errorResponse
// @Router       /job/get-jobs-by-skill/{skill} [get]
func (h *JobHandler) ListBySkill(c echo.Context) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), ports.ListJobsInput{
		Skill: c.Param("skill"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// ListByTag filters the feed by a case-insensitive tag match.
//
// @Summary      List jobs by tag
// @Tags         job
// @Produce      json
// @Security     BearerAuth
// @Param        tag  path      string  true  "Tag to match"
// @Success      200  {object}  jobListResponse
// @Failure      401  {object}  errorResponse
// @Router       /job/get-jobs-by-tags/{tag} [get]
func (h *JobHandler) ListByTag(c echo.Context) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), ports.ListJobsInput{
		Tag: c.Param("tag"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// ListByLocation filters the feed by a case-insensitive location match.
//
// @Summary      List jobs by location
// @Tags         job
// @Produce      json
// @Security     BearerAuth
// @Param        location  path      string  true  "Location to match"
// @Success      200       {object}  jobListResponse
// @Failure      401       {object}  errorResponse
// @Router       /job/get-jobs-by-location/{location} [get]
func (h *JobHandler) ListByLocation(c echo.Context) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), ports.ListJobsInput{
		Location: c.Param("location"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// UserPosts returns every posting the authenticated user has submitted,
// confirmed or not.
//
// @Summary      List own job postings
// @Tags         job
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListResponse
// @Failure      401  {object}  errorResponse
// @Router       /job/user-posts [get]
func (h *JobHandler) UserPosts(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListUserPosts(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}
