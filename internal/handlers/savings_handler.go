package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/metrics"
	"opsdeck/internal/services"
)

// SavingsHandler handles savings target requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, auditService: auditService}
}

// CreateSavingsTargetRequest represents the request payload for creating a savings target.
type CreateSavingsTargetRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  float64    `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount" binding:"gte=0"`
	Deadline      *time.Time `json:"deadline"`
}

// UpdateSavingsTargetRequest represents the request payload for updating a savings target.
type UpdateSavingsTargetRequest struct {
	Name          string     `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount  *float64   `json:"target_amount" binding:"omitempty,gt=0"`
	CurrentAmount *float64   `json:"current_amount" binding:"omitempty,gte=0"`
	Deadline      *time.Time `json:"deadline"`
}

// CreateTarget handles creating a savings target.
// @Summary     Create a savings target
// @Description Create a new savings target for the authenticated user
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingsTargetRequest true "Savings target details"
// @Success     201 {object} models.SavingsTarget "Savings target created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [post]
func (h *SavingsHandler) CreateTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	target, err := h.savingsService.CreateTarget(userID, req.Name, req.TargetAmount, req.CurrentAmount, req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SAVINGS_TARGET", "savings_target", target.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"savings_target": target})
}

// GetTargets handles listing savings targets with computed progress.
// @Summary     Get savings targets
// @Description Get the user's savings targets with progress percentages
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.SavingsTarget "Savings targets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingsHandler) GetTargets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targets, err := h.savingsService.GetUserTargets(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(targets))
	for _, target := range targets {
		items = append(items, gin.H{
			"savings_target": target,
			"progress":       metrics.ProgressPercent(target.CurrentAmount, target.TargetAmount),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"savings_targets": items,
		"total_saved":     metrics.TotalSaved(targets),
	})
}

// UpdateTarget handles updating a savings target.
// @Summary     Update a savings target
// @Description Update an existing savings target's fields
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                        true "Savings target ID"
// @Param       request body UpdateSavingsTargetRequest true "Fields to update"
// @Success     200 {object} models.SavingsTarget "Savings target updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Savings target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id} [put]
func (h *SavingsHandler) UpdateTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSavingsTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	target, err := h.savingsService.UpdateTarget(userID, targetID, req.Name, req.TargetAmount, req.CurrentAmount, req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SAVINGS_TARGET", "savings_target", targetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"savings_target": target})
}

// DeleteTarget handles removing a savings target.
// @Summary     Delete a savings target
// @Description Delete a savings target the user owns
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Savings target ID"
// @Success     200 {object} map[string]string "Savings target deleted"
// @Failure     400 {object} ErrorResponse "Invalid savings target ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Savings target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id} [delete]
func (h *SavingsHandler) DeleteTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsService.DeleteTarget(userID, targetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SAVINGS_TARGET", "savings_target", targetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings target deleted successfully"})
}
