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

// savingsService handles savings targets.
type savingsService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) SavingsServicer {
	return &savingsService{db: db, cache: cache, notifier: notifier}
}

// CreateTarget validates and inserts a savings target. A non-positive
// target amount is rejected here so progress display never has to
// guard a zero denominator.
func (s *savingsService) CreateTarget(userID uint, name string, targetAmount, currentAmount float64, deadline *time.Time) (*models.SavingsTarget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target amount must be greater than zero")
	}
	if currentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Current amount cannot be negative")
	}

	target := &models.SavingsTarget{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
	}

	if err := s.db.Create(target).Error; err != nil {
		s.notifier.Error(userID, "Failed to create savings goal")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableSavingsTargets, userID)
	s.notifier.Success(userID, "Savings goal created")
	return target, nil
}

// GetUserTargets returns the user's savings targets, newest first,
// through the query cache.
func (s *savingsService) GetUserTargets(ctx context.Context, userID uint) ([]models.SavingsTarget, error) {
	key := querycache.Key(querycache.KeySavings, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.SavingsTarget, error) {
		var targets []models.SavingsTarget
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&targets).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return targets, nil
	})
}

// UpdateTarget updates an existing savings target's fields.
func (s *savingsService) UpdateTarget(userID, targetID uint, name string, targetAmount, currentAmount *float64, deadline *time.Time) (*models.SavingsTarget, error) {
	target, err := s.getTargetByID(userID, targetID)
	if err != nil {
		return nil, err
	}

	if targetAmount != nil && *targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target amount must be greater than zero")
	}
	if currentAmount != nil && *currentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Current amount cannot be negative")
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if targetAmount != nil {
		updates["target_amount"] = *targetAmount
	}
	if currentAmount != nil {
		updates["current_amount"] = *currentAmount
	}
	if deadline != nil {
		updates["deadline"] = deadline
	}

	if len(updates) > 0 {
		if err := s.db.Model(target).Updates(updates).Error; err != nil {
			s.notifier.Error(userID, "Failed to update savings goal")
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.cache.InvalidateEntity(querycache.TableSavingsTargets, userID)
	}

	s.notifier.Success(userID, "Savings goal updated")
	return target, nil
}

// DeleteTarget removes a savings target the user owns.
func (s *savingsService) DeleteTarget(userID, targetID uint) error {
	target, err := s.getTargetByID(userID, targetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(target).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete savings goal")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableSavingsTargets, userID)
	s.notifier.Success(userID, "Savings goal deleted")
	return nil
}

func (s *savingsService) getTargetByID(userID, targetID uint) (*models.SavingsTarget, error) {
	var target models.SavingsTarget
	if err := s.db.Where("id = ? AND user_id = ?", targetID, userID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsTargetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &target, nil
}
