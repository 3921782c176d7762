package services

import (
	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/logger"
	"divvy/internal/models"
	"divvy/internal/pagination"
)

// activityService records the append-only activity log.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// Record appends an activity entry. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *activityService) Record(userID uint, activityType models.ActivityType, description string, expenseID, groupID *uint) {
	entry := &models.Activity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		ExpenseID:    expenseID,
		GroupID:      groupID,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create activity entry",
			"error", err,
			"user_id", userID,
			"activity_type", activityType,
		)
	}
}

// GetUserActivities lists the caller's activity entries, newest first.
func (s *activityService) GetUserActivities(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
	page.Defaults()

	base := s.db.Model(&models.Activity{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var activities []models.Activity
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(activities, page.Page, page.PageSize, totalItems)
	return &result, nil
}
