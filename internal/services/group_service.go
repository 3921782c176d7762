package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/pagination"
)

// groupService handles group and membership business logic.
type groupService struct {
	db       *gorm.DB
	activity ActivityServicer
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB, activity ActivityServicer) GroupServicer {
	return &groupService{db: db, activity: activity}
}

// CreateGroup creates a group and enrolls the creator as its first member.
// Both rows are written in one transaction so a group can never exist
// without at least one membership row.
func (s *groupService) CreateGroup(userID uint, name, description string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	group := &models.Group{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		member := &models.GroupMember{GroupID: group.ID, UserID: userID}
		if err := tx.Create(member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(userID, models.ActivityGroupCreated,
		fmt.Sprintf("Created group %q", group.Name), nil, &group.ID)

	return group, nil
}

// GetUserGroups retrieves the groups the user has a membership row in.
func (s *groupService) GetUserGroups(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Group], error) {
	page.Defaults()

	base := s.db.Model(&models.Group{}).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ? AND group_members.deleted_at IS NULL", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var groups []models.Group
	if err := base.Scopes(pagination.Paginate(page)).
		Order("groups.created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(groups, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGroupByID retrieves a group. Visibility requires a membership row for
// the caller; non-members get the same not-found response as a missing group.
func (s *groupService) GetGroupByID(userID, groupID uint) (*models.Group, error) {
	member, err := s.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrGroupNotFound
	}

	var group models.Group
	if err := s.db.Preload("Members.User").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// AddMember adds a user, looked up by email, to a group the caller belongs to.
func (s *groupService) AddMember(userID, groupID uint, email string) (*models.GroupMember, error) {
	member, err := s.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrNotGroupMember
	}

	var target models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	exists, err := s.IsMember(groupID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyMember
	}

	newMember := &models.GroupMember{GroupID: groupID, UserID: target.ID}
	if err := s.db.Create(newMember).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.activity.Record(userID, models.ActivityMemberAdded,
		fmt.Sprintf("Added %s to the group", target.Email), nil, &groupID)

	newMember.User = target
	return newMember, nil
}

// GetGroupMembers lists membership rows for a group. Like the group itself,
// the member list is only visible to existing members.
func (s *groupService) GetGroupMembers(userID, groupID uint) ([]models.GroupMember, error) {
	member, err := s.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrNotGroupMember
	}

	var members []models.GroupMember
	if err := s.db.Preload("User").Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// IsMember reports whether a membership row exists for the user. This is a
// flat lookup on group_members alone; visibility checks must never go back
// through group-level filters, which would recurse.
func (s *groupService) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
