package models

// Group represents a set of users sharing expenses
type Group struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	CreatedBy   uint   `gorm:"not null" json:"created_by"`

	// Relationships
	Members  []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Expenses []Expense     `gorm:"foreignKey:GroupID" json:"expenses,omitempty"`
}

// GroupMember joins users to groups. The creator of a group always has a
// membership row, written in the same transaction as the group itself.
type GroupMember struct {
	Base
	GroupID uint `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
