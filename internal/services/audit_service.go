package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"opsdeck/internal/logger"
	"opsdeck/internal/models"
)

// auditService records security-relevant actions. Writes are
// best-effort: an audit failure is logged but never fails the request
// that triggered it.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log persists one audit entry.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	var payload string
	if len(changes) > 0 {
		b, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to marshal audit changes", "error", err, "action", action)
		} else {
			payload = string(b)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      payload,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Warnw("failed to write audit log", "error", err, "action", action, "user_id", userID)
	}
}
