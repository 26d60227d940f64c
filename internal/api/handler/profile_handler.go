package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainboard/job-board-api/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/get-profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

// Update replaces the authenticated user's profile fields.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/update-profile [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Name:          req.Name,
		Bio:           req.Bio,
		LinkedInURL:   req.LinkedInURL,
		Skills:        req.Skills,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

// AddSkills merges new skills into the profile without dropping existing ones.
//
// @Summary      Add skills to own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addSkillsRequest  true  "Skills to add"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/add-skills [post]
func (h *ProfileHandler) AddSkills(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addSkillsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.AddSkills(c.Request().Context(), userID, req.Skills)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

// Dashboard returns a welcome payload for the authenticated user.
//
// @Summary      Dashboard greeting
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	email, _ := c.Get("email").(string)

	return c.JSON(http.StatusOK, dashboardResponse{
		Message: "welcome to your dashboard",
		Email:   email,
	})
}
