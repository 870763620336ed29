package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/services"
)

// ProfileHandler handles user profile requests.
type ProfileHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(userService services.UserServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{userService: userService, auditService: auditService}
}

// UpdateProfileRequest represents the request payload for updating the profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
}

// GetProfile handles fetching the authenticated user's profile.
// @Summary     Get profile
// @Description Get the authenticated user's profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile handles updating the authenticated user's profile.
// @Summary     Update profile
// @Description Update the authenticated user's display name
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.Profile "Profile updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.userService.UpdateProfile(userID, req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"full_name": req.FullName})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
