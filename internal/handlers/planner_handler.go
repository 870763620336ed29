package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/metrics"
	"opsdeck/internal/models"
	"opsdeck/internal/services"
)

// PlannerHandler handles day planner requests.
type PlannerHandler struct {
	plannerService services.PlannerServicer
	auditService   services.AuditServicer
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService services.PlannerServicer, auditService services.AuditServicer) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService, auditService: auditService}
}

// CreateEventRequest represents the request payload for creating a planner event.
type CreateEventRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	Type        models.EventType `json:"type" binding:"required,event_type"`
	Priority    string           `json:"priority" binding:"omitempty,oneof=low medium high"`
	Date        string           `json:"date" binding:"omitempty,iso_date"`
	StartTime   string           `json:"start_time" binding:"omitempty,clock_time"`
	EndTime     string           `json:"end_time" binding:"omitempty,clock_time"`
}

// CreateEvent handles creating a planner event.
// @Summary     Create a planner event
// @Description Create a task, event, meeting, or reminder
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEventRequest true "Event details"
// @Success     201 {object} models.PlannerEvent "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/events [post]
func (h *PlannerHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.plannerService.CreateEvent(userID, req.Title, req.Description, req.Type, req.Priority, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EVENT", "planner_event", event.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "type": req.Type, "date": event.Date})

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetDayEvents handles the day view with a completion counter.
// @Summary     Get events for a day
// @Description Get the user's events on one date with completion counts
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Date (YYYY-MM-DD, default today)"
// @Success     200 {array} models.PlannerEvent "Events"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/events [get]
func (h *PlannerHandler) GetDayEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}

	events, err := h.plannerService.EventsForDay(c.Request.Context(), userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	completed, total := metrics.CompletionCounts(events)
	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"date":      date,
		"completed": completed,
		"total":     total,
	})
}

// GetWeekEvents handles the week view.
// @Summary     Get events for a week
// @Description Get the user's events for the Monday-start week containing a day
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       day query string false "Any day in the week (YYYY-MM-DD, default today)"
// @Success     200 {array} models.PlannerEvent "Events"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/week [get]
func (h *PlannerHandler) GetWeekEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	day := c.Query("day")
	if day == "" {
		day = time.Now().Format(models.DateLayout)
	}

	events, err := h.plannerService.EventsForWeek(c.Request.Context(), userID, day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	t, _ := time.Parse(models.DateLayout, day)
	offset := (int(t.Weekday()) + 6) % 7
	weekStart := t.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 6)

	c.JSON(http.StatusOK, gin.H{
		"events":     events,
		"week_start": weekStart.Format(models.DateLayout),
		"week_end":   weekEnd.Format(models.DateLayout),
	})
}

// ToggleComplete handles flipping an event's completed flag.
// @Summary     Toggle event completion
// @Description Flip the completed flag on a planner event
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} models.PlannerEvent "Event updated"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/events/{id}/toggle [patch]
func (h *PlannerHandler) ToggleComplete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.plannerService.ToggleComplete(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent handles removing a planner event.
// @Summary     Delete a planner event
// @Description Delete a planner event the user owns
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} map[string]string "Event deleted"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/events/{id} [delete]
func (h *PlannerHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannerService.DeleteEvent(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EVENT", "planner_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
