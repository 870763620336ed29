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

// businessService handles business tracking logic.
type businessService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewBusinessService creates a new BusinessServicer.
func NewBusinessService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) BusinessServicer {
	return &businessService{db: db, cache: cache, notifier: notifier}
}

// CreateBusiness validates and inserts a new business, then drops the
// user's cached business queries.
func (s *businessService) CreateBusiness(userID uint, name, description, industry string, revenue float64, status models.BusinessStatus) (*models.Business, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Business name is required")
	}
	if revenue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Revenue cannot be negative")
	}
	if status == "" {
		status = models.BusinessStatusActive
	}

	business := &models.Business{
		UserID:      userID,
		Name:        name,
		Description: description,
		Industry:    industry,
		Revenue:     revenue,
		Status:      status,
	}

	if err := s.db.Create(business).Error; err != nil {
		s.notifier.Error(userID, "Failed to create business")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableBusinesses, userID)
	s.notifier.Success(userID, "Business created successfully")
	return business, nil
}

// GetUserBusinesses returns the user's businesses, newest first,
// through the query cache.
func (s *businessService) GetUserBusinesses(ctx context.Context, userID uint) ([]models.Business, error) {
	key := querycache.Key(querycache.KeyBusinesses, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Business, error) {
		var businesses []models.Business
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&businesses).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return businesses, nil
	})
}

// GetBusinessByID returns a business by ID if it belongs to the user.
func (s *businessService) GetBusinessByID(userID, businessID uint) (*models.Business, error) {
	var business models.Business
	if err := s.db.Where("id = ? AND user_id = ?", businessID, userID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBusinessNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &business, nil
}

// UpdateBusiness updates an existing business's fields.
func (s *businessService) UpdateBusiness(userID, businessID uint, name, description, industry string, revenue *float64, status *models.BusinessStatus) (*models.Business, error) {
	business, err := s.GetBusinessByID(userID, businessID)
	if err != nil {
		return nil, err
	}

	if revenue != nil && *revenue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Revenue cannot be negative")
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if industry != "" {
		updates["industry"] = industry
	}
	if revenue != nil {
		updates["revenue"] = *revenue
	}
	if status != nil {
		updates["status"] = *status
	}

	if len(updates) > 0 {
		if err := s.db.Model(business).Updates(updates).Error; err != nil {
			s.notifier.Error(userID, "Failed to update business")
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.cache.InvalidateEntity(querycache.TableBusinesses, userID)
	}

	s.notifier.Success(userID, "Business updated successfully")
	return business, nil
}

// DeleteBusiness soft-deletes a business and its departments.
func (s *businessService) DeleteBusiness(userID, businessID uint) error {
	business, err := s.GetBusinessByID(userID, businessID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ? AND user_id = ?", businessID, userID).
			Delete(&models.Department{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(business).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		s.notifier.Error(userID, "Failed to delete business")
		return err
	}

	s.cache.InvalidateEntity(querycache.TableBusinesses, userID)
	s.cache.InvalidateEntity(querycache.TableDepartments, userID)
	s.notifier.Success(userID, "Business deleted successfully")
	return nil
}
