package models

// ActivityType identifies what kind of event an activity row records
type ActivityType string

const (
	ActivityExpenseAdded    ActivityType = "expense_added"
	ActivitySettlementAdded ActivityType = "settlement_added"
	ActivityGroupCreated    ActivityType = "group_created"
	ActivityMemberAdded     ActivityType = "member_added"
	ActivityFriendRequested ActivityType = "friend_requested"
	ActivityFriendAccepted  ActivityType = "friend_accepted"
)

// Activity is an append-only audit entry for a user action
type Activity struct {
	Base
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"not null" json:"activity_type"`
	Description  string       `json:"description"`
	ExpenseID    *uint        `json:"expense_id,omitempty"`
	GroupID      *uint        `json:"group_id,omitempty"`
}
