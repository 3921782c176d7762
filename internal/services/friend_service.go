package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
)

// friendService handles friendship business logic. A friendship is one
// directed row; an accepted row counts for both sides.
type friendService struct {
	db       *gorm.DB
	activity ActivityServicer
}

// NewFriendService creates a new FriendServicer.
func NewFriendService(db *gorm.DB, activity ActivityServicer) FriendServicer {
	return &friendService{db: db, activity: activity}
}

// AddFriend looks up the target by email and inserts a pending row.
// Self-friending and pre-existing relationships in either direction are
// rejected before any write.
func (s *friendService) AddFriend(userID uint, email string) (*models.Friendship, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	var target models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFriendNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if target.ID == userID {
		return nil, apperrors.ErrSelfFriendship
	}

	var count int64
	if err := s.db.Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, target.ID, target.ID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrFriendshipExists
	}

	friendship := &models.Friendship{
		UserID:   userID,
		FriendID: target.ID,
		Status:   models.FriendshipStatusPending,
	}
	if err := s.db.Create(friendship).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.activity.Record(userID, models.ActivityFriendRequested,
		fmt.Sprintf("Sent a friend request to %s", target.Email), nil, nil)

	friendship.Friend = target
	return friendship, nil
}

// GetFriends returns the users on the other side of every accepted row the
// caller appears in, regardless of direction.
func (s *friendService) GetFriends(userID uint) ([]models.User, error) {
	var friendships []models.Friendship
	if err := s.db.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userID, userID, models.FriendshipStatusAccepted).
		Find(&friendships).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	counterpartIDs := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == userID {
			counterpartIDs = append(counterpartIDs, f.FriendID)
		} else {
			counterpartIDs = append(counterpartIDs, f.UserID)
		}
	}

	friends := []models.User{}
	if len(counterpartIDs) == 0 {
		return friends, nil
	}
	if err := s.db.Where("id IN ?", counterpartIDs).Find(&friends).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return friends, nil
}

// GetPendingRequests lists incoming pending rows with the requester preloaded.
func (s *friendService) GetPendingRequests(userID uint) ([]models.Friendship, error) {
	var requests []models.Friendship
	if err := s.db.Preload("User").
		Where("friend_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requests, nil
}

// AcceptFriend flips an incoming pending row to accepted.
func (s *friendService) AcceptFriend(userID, friendshipID uint) (*models.Friendship, error) {
	friendship, err := s.pendingRequestFor(userID, friendshipID)
	if err != nil {
		return nil, err
	}

	friendship.Status = models.FriendshipStatusAccepted
	if err := s.db.Save(friendship).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.activity.Record(userID, models.ActivityFriendAccepted, "Accepted a friend request", nil, nil)
	return friendship, nil
}

// DeclineFriend removes an incoming pending row.
func (s *friendService) DeclineFriend(userID, friendshipID uint) error {
	friendship, err := s.pendingRequestFor(userID, friendshipID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(friendship).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// BlockFriend marks a relationship the caller appears in as blocked.
func (s *friendService) BlockFriend(userID, friendshipID uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := s.db.Where("id = ? AND (user_id = ? OR friend_id = ?)",
		friendshipID, userID, userID).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	friendship.Status = models.FriendshipStatusBlocked
	if err := s.db.Save(&friendship).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &friendship, nil
}

func (s *friendService) pendingRequestFor(userID, friendshipID uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := s.db.Where("id = ? AND friend_id = ? AND status = ?",
		friendshipID, userID, models.FriendshipStatusPending).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &friendship, nil
}
