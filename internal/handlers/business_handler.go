package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/models"
	"opsdeck/internal/pagination"
	"opsdeck/internal/services"
)

// BusinessHandler handles business and department requests.
type BusinessHandler struct {
	businessService   services.BusinessServicer
	departmentService services.DepartmentServicer
	auditService      services.AuditServicer
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService services.BusinessServicer, departmentService services.DepartmentServicer, auditService services.AuditServicer) *BusinessHandler {
	return &BusinessHandler{
		businessService:   businessService,
		departmentService: departmentService,
		auditService:      auditService,
	}
}

// CreateBusinessRequest represents the request payload for creating a business.
type CreateBusinessRequest struct {
	Name        string                `json:"name" binding:"required,min=1,max=100"`
	Description string                `json:"description" binding:"max=500"`
	Industry    string                `json:"industry" binding:"max=100"`
	Revenue     float64               `json:"revenue" binding:"gte=0"`
	Status      models.BusinessStatus `json:"status" binding:"omitempty,business_status"`
}

// UpdateBusinessRequest represents the request payload for updating a business.
type UpdateBusinessRequest struct {
	Name        string                 `json:"name" binding:"omitempty,min=1,max=100"`
	Description string                 `json:"description" binding:"max=500"`
	Industry    string                 `json:"industry" binding:"max=100"`
	Revenue     *float64               `json:"revenue" binding:"omitempty,gte=0"`
	Status      *models.BusinessStatus `json:"status" binding:"omitempty,business_status"`
}

// CreateDepartmentRequest represents the request payload for adding a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateBusiness handles the creation of a new business.
// @Summary     Create a business
// @Description Create a new business for the authenticated user
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBusinessRequest true "Business details"
// @Success     201 {object} models.Business "Business created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses [post]
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	business, err := h.businessService.CreateBusiness(userID, req.Name, req.Description, req.Industry, req.Revenue, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUSINESS", "business", business.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "status": business.Status})

	c.JSON(http.StatusCreated, gin.H{"business": business})
}

// GetBusinesses handles listing businesses for the authenticated user.
// @Summary     Get businesses
// @Description Get a paginated list of businesses for the authenticated user
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Business] "Paginated businesses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses [get]
func (h *BusinessHandler) GetBusinesses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	businesses, err := h.businessService.GetUserBusinesses(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Slice(businesses, page))
}

// GetBusiness handles retrieving a specific business.
// @Summary     Get business by ID
// @Description Get a specific business by ID
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Business ID"
// @Success     200 {object} models.Business "Business details"
// @Failure     400 {object} ErrorResponse "Invalid business ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Business not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses/{id} [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	businessID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	business, err := h.businessService.GetBusinessByID(userID, businessID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}

// UpdateBusiness handles updating a business.
// @Summary     Update a business
// @Description Update an existing business's fields
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                   true "Business ID"
// @Param       request body UpdateBusinessRequest true "Fields to update"
// @Success     200 {object} models.Business "Business updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Business not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses/{id} [put]
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	businessID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	business, err := h.businessService.UpdateBusiness(userID, businessID, req.Name, req.Description, req.Industry, req.Revenue, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUSINESS", "business", businessID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"business": business})
}

// DeleteBusiness handles deleting a business and its departments.
// @Summary     Delete a business
// @Description Delete a business and all of its departments
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Business ID"
// @Success     200 {object} map[string]string "Business deleted"
// @Failure     400 {object} ErrorResponse "Invalid business ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Business not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses/{id} [delete]
func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	businessID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.businessService.DeleteBusiness(userID, businessID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUSINESS", "business", businessID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Business deleted successfully"})
}

// CreateDepartment handles adding a department to a business.
// @Summary     Add a department
// @Description Add a department to a business the user owns
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Business ID"
// @Param       request body CreateDepartmentRequest true "Department details"
// @Success     201 {object} models.Department "Department created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Business not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /businesses/{id}/departments [post]
func (h *BusinessHandler) CreateDepartment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	businessID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	department, err := h.departmentService.CreateDepartment(userID, businessID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEPARTMENT", "department", department.ID, c.ClientIP(),
		map[string]interface{}{"business_id": businessID, "name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"department": department})
}

// GetDepartments handles listing all departments for the user.
// @Summary     Get departments
// @Description Get all departments across the user's businesses
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Department "Departments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments [get]
func (h *BusinessHandler) GetDepartments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	departments, err := h.departmentService.GetUserDepartments(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// DeleteDepartment handles removing a department.
// @Summary     Delete a department
// @Description Delete a department the user owns
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Department ID"
// @Success     200 {object} map[string]string "Department deleted"
// @Failure     400 {object} ErrorResponse "Invalid department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id} [delete]
func (h *BusinessHandler) DeleteDepartment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.departmentService.DeleteDepartment(userID, departmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEPARTMENT", "department", departmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
