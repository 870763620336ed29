package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/models"
	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
)

// investmentService handles investment positions.
type investmentService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) InvestmentServicer {
	return &investmentService{db: db, cache: cache, notifier: notifier}
}

// CreateInvestment validates and inserts a position.
func (s *investmentService) CreateInvestment(userID uint, name, invType string, amount, currentValue float64, notes string) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if invType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Type is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if currentValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Current value cannot be negative")
	}

	investment := &models.Investment{
		UserID:       userID,
		Name:         name,
		Type:         invType,
		Amount:       amount,
		CurrentValue: currentValue,
		Notes:        notes,
	}

	if err := s.db.Create(investment).Error; err != nil {
		s.notifier.Error(userID, "Failed to add investment")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableInvestments, userID)
	s.notifier.Success(userID, "Investment added")
	return investment, nil
}

// GetUserInvestments returns the user's positions, newest first,
// through the query cache.
func (s *investmentService) GetUserInvestments(ctx context.Context, userID uint) ([]models.Investment, error) {
	key := querycache.Key(querycache.KeyInvestments, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Investment, error) {
		var investments []models.Investment
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&investments).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return investments, nil
	})
}

// UpdateInvestment updates a position's name, value, or notes.
func (s *investmentService) UpdateInvestment(userID, investmentID uint, name string, currentValue *float64, notes string) (*models.Investment, error) {
	investment, err := s.getInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	if currentValue != nil && *currentValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Current value cannot be negative")
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if currentValue != nil {
		updates["current_value"] = *currentValue
	}
	if notes != "" {
		updates["notes"] = notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(investment).Updates(updates).Error; err != nil {
			s.notifier.Error(userID, "Failed to update investment")
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.cache.InvalidateEntity(querycache.TableInvestments, userID)
	}

	s.notifier.Success(userID, "Investment updated")
	return investment, nil
}

// DeleteInvestment removes a position the user owns.
func (s *investmentService) DeleteInvestment(userID, investmentID uint) error {
	investment, err := s.getInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(investment).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete investment")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableInvestments, userID)
	s.notifier.Success(userID, "Investment deleted")
	return nil
}

func (s *investmentService) getInvestmentByID(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}
