package models

// User represents a registered profile in the system
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Memberships []GroupMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Expenses    []Expense     `gorm:"foreignKey:PaidBy" json:"expenses,omitempty"`
	Activities  []Activity    `gorm:"foreignKey:UserID" json:"activities,omitempty"`
}
