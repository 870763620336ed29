package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/models"
	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
)

// plannerService handles day planner events.
type plannerService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) PlannerServicer {
	return &plannerService{db: db, cache: cache, notifier: notifier}
}

// CreateEvent validates and inserts a planner event. Date defaults to
// today; an end time before the start time is rejected.
func (s *plannerService) CreateEvent(userID uint, title, description string, eventType models.EventType, priority, date, startTime, endTime string) (*models.PlannerEvent, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}
	switch eventType {
	case models.EventTypeTask, models.EventTypeEvent, models.EventTypeMeeting, models.EventTypeReminder:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid event type")
	}
	if priority == "" {
		priority = "medium"
	}
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	if startTime != "" {
		if _, err := time.Parse(models.TimeLayout, startTime); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start time")
		}
	}
	if endTime != "" {
		if _, err := time.Parse(models.TimeLayout, endTime); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end time")
		}
		// HH:MM strings compare correctly as strings.
		if startTime != "" && endTime < startTime {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "End time must be after start time")
		}
	}

	event := &models.PlannerEvent{
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        eventType,
		Priority:    priority,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := s.db.Create(event).Error; err != nil {
		s.notifier.Error(userID, "Failed to add event")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TablePlannerEvents, userID)
	s.notifier.Success(userID, "Event added")
	return event, nil
}

// EventsForDay returns the user's events on one date, ordered by start
// time, through the query cache.
func (s *plannerService) EventsForDay(ctx context.Context, userID uint, date string) ([]models.PlannerEvent, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	key := querycache.Key(querycache.KeyPlannerEvents, userID, date)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.PlannerEvent, error) {
		return s.fetchRange(ctx, userID, date, date)
	})
}

// EventsForWeek returns the user's events for the Monday-start week
// containing the given day.
func (s *plannerService) EventsForWeek(ctx context.Context, userID uint, day string) ([]models.PlannerEvent, error) {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	// Monday is day one; Sunday folds to the end of the week.
	offset := (int(t.Weekday()) + 6) % 7
	weekStart := t.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 6)
	from := weekStart.Format(models.DateLayout)
	to := weekEnd.Format(models.DateLayout)

	key := querycache.Key(querycache.KeyWeekEvents, userID, from)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.PlannerEvent, error) {
		return s.fetchRange(ctx, userID, from, to)
	})
}

// EventsForToday returns today's events for the dashboard schedule.
func (s *plannerService) EventsForToday(ctx context.Context, userID uint) ([]models.PlannerEvent, error) {
	today := time.Now().Format(models.DateLayout)
	key := querycache.Key(querycache.KeyTodayEvents, userID, today)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.PlannerEvent, error) {
		return s.fetchRange(ctx, userID, today, today)
	})
}

func (s *plannerService) fetchRange(ctx context.Context, userID uint, from, to string) ([]models.PlannerEvent, error) {
	var events []models.PlannerEvent
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, start_time ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return events, nil
}

// ToggleComplete flips an event's completed flag. The write fans out
// to every planner key family so the day view, week view, and
// dashboard counter all refetch.
func (s *plannerService) ToggleComplete(userID, eventID uint) (*models.PlannerEvent, error) {
	event, err := s.getEventByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	event.Completed = !event.Completed
	if err := s.db.Model(event).Update("completed", event.Completed).Error; err != nil {
		s.notifier.Error(userID, "Failed to update event")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TablePlannerEvents, userID)
	return event, nil
}

// DeleteEvent removes an event the user owns.
func (s *plannerService) DeleteEvent(userID, eventID uint) error {
	event, err := s.getEventByID(userID, eventID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(event).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete event")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TablePlannerEvents, userID)
	s.notifier.Success(userID, "Event deleted")
	return nil
}

func (s *plannerService) getEventByID(userID, eventID uint) (*models.PlannerEvent, error) {
	var event models.PlannerEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}
