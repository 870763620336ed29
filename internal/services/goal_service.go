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

// goalService handles goal tracking.
type goalService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) GoalServicer {
	return &goalService{db: db, cache: cache, notifier: notifier}
}

// CreateGoal validates and inserts a goal.
func (s *goalService) CreateGoal(userID uint, title, description, category string, priority models.GoalPriority, status models.GoalStatus, progress int, targetDate *time.Time) (*models.Goal, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required")
	}
	if priority == "" {
		priority = models.GoalPriorityMedium
	}
	if status == "" {
		status = models.GoalStatusNotStarted
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      status,
		Progress:    models.ClampProgress(progress),
		TargetDate:  targetDate,
	}

	if err := s.db.Create(goal).Error; err != nil {
		s.notifier.Error(userID, "Failed to create goal")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableGoals, userID)
	s.notifier.Success(userID, "Goal created")
	return goal, nil
}

// GetUserGoals returns the user's goals, newest first, through the
// query cache.
func (s *goalService) GetUserGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	key := querycache.Key(querycache.KeyGoals, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Goal, error) {
		var goals []models.Goal
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&goals).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return goals, nil
	})
}

// UpdateGoal updates an existing goal's fields. Progress passed here
// is clamped; status is taken as given since the form exposes both.
func (s *goalService) UpdateGoal(userID, goalID uint, title, description, category string, priority *models.GoalPriority, status *models.GoalStatus, progress *int, targetDate *time.Time) (*models.Goal, error) {
	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != "" {
		updates["title"] = title
	}
	if description != "" {
		updates["description"] = description
	}
	if category != "" {
		updates["category"] = category
	}
	if priority != nil {
		updates["priority"] = *priority
	}
	if status != nil {
		updates["status"] = *status
	}
	if progress != nil {
		updates["progress"] = models.ClampProgress(*progress)
	}
	if targetDate != nil {
		updates["target_date"] = targetDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			s.notifier.Error(userID, "Failed to update goal")
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.cache.InvalidateEntity(querycache.TableGoals, userID)
	}

	s.notifier.Success(userID, "Goal updated")
	return goal, nil
}

// UpdateProgress persists a slider-driven progress change together
// with its derived status as one write, so no reader can ever cache a
// progress/status pair that disagrees.
func (s *goalService) UpdateProgress(userID, goalID uint, progress int) (*models.Goal, error) {
	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	clamped := models.ClampProgress(progress)
	updates := map[string]interface{}{
		"progress": clamped,
		"status":   models.StatusForProgress(clamped),
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		s.notifier.Error(userID, "Failed to update goal")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableGoals, userID)
	return goal, nil
}

// DeleteGoal removes a goal the user owns.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete goal")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableGoals, userID)
	s.notifier.Success(userID, "Goal deleted")
	return nil
}

func (s *goalService) getGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}
