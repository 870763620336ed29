package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/metrics"
	"opsdeck/internal/services"
)

// InvestmentHandler handles investment position requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for adding a position.
type CreateInvestmentRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=100"`
	Type         string  `json:"type" binding:"required,min=1,max=50"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	CurrentValue float64 `json:"current_value" binding:"gte=0"`
	Notes        string  `json:"notes" binding:"max=500"`
}

// UpdateInvestmentRequest represents the request payload for updating a position.
type UpdateInvestmentRequest struct {
	Name         string   `json:"name" binding:"omitempty,min=1,max=100"`
	CurrentValue *float64 `json:"current_value" binding:"omitempty,gte=0"`
	Notes        string   `json:"notes" binding:"max=500"`
}

// CreateInvestment handles adding an investment position.
// @Summary     Add an investment
// @Description Add a new investment position
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(userID, req.Name, req.Type, req.Amount, req.CurrentValue, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing positions with portfolio totals.
// @Summary     Get investments
// @Description Get the user's investment positions with portfolio totals
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Investment "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.investmentService.GetUserInvestments(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invested := metrics.TotalInvested(investments)
	value := metrics.PortfolioValue(investments)

	c.JSON(http.StatusOK, gin.H{
		"investments":     investments,
		"total_invested":  invested,
		"portfolio_value": value,
		"gain_percent":    metrics.GainPercent(invested, value),
	})
}

// UpdateInvestment handles updating a position.
// @Summary     Update an investment
// @Description Update a position's name, current value, or notes
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Investment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(userID, investmentID, req.Name, req.CurrentValue, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles removing a position.
// @Summary     Delete an investment
// @Description Delete an investment position the user owns
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}
