package models

// FriendshipStatus represents the state of a friendship
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusBlocked  FriendshipStatus = "blocked"
)

// Friendship is a single directed row between two users. An accepted row is
// treated as symmetric: either side sees the other as a friend.
type Friendship struct {
	Base
	UserID   uint             `gorm:"not null;uniqueIndex:idx_user_friend" json:"user_id"`
	FriendID uint             `gorm:"not null;uniqueIndex:idx_user_friend" json:"friend_id"`
	Status   FriendshipStatus `gorm:"not null;default:'pending'" json:"status"`

	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}
