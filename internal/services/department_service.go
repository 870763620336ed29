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

// departmentService handles department logic.
type departmentService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewDepartmentService creates a new DepartmentServicer.
func NewDepartmentService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) DepartmentServicer {
	return &departmentService{db: db, cache: cache, notifier: notifier}
}

// CreateDepartment adds a department to a business the user owns.
func (s *departmentService) CreateDepartment(userID, businessID uint, name string) (*models.Department, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Department name is required")
	}

	// Verify the parent business exists and belongs to the user.
	var business models.Business
	if err := s.db.Where("id = ? AND user_id = ?", businessID, userID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBusinessNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	department := &models.Department{
		UserID:     userID,
		BusinessID: businessID,
		Name:       name,
	}

	if err := s.db.Create(department).Error; err != nil {
		s.notifier.Error(userID, "Failed to create department")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableDepartments, userID)
	s.notifier.Success(userID, "Department created")
	return department, nil
}

// GetUserDepartments returns all of the user's departments through the
// query cache.
func (s *departmentService) GetUserDepartments(ctx context.Context, userID uint) ([]models.Department, error) {
	key := querycache.Key(querycache.KeyDepartments, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Department, error) {
		var departments []models.Department
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Find(&departments).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return departments, nil
	})
}

// DeleteDepartment removes a department the user owns.
func (s *departmentService) DeleteDepartment(userID, departmentID uint) error {
	var department models.Department
	if err := s.db.Where("id = ? AND user_id = ?", departmentID, userID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&department).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete department")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableDepartments, userID)
	s.notifier.Success(userID, "Department deleted")
	return nil
}
