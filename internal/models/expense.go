package models

import "time"

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryFood          ExpenseCategory = "food"
	ExpenseCategoryTransport     ExpenseCategory = "transport"
	ExpenseCategoryEntertainment ExpenseCategory = "entertainment"
	ExpenseCategoryUtilities     ExpenseCategory = "utilities"
	ExpenseCategoryRent          ExpenseCategory = "rent"
	ExpenseCategoryTravel        ExpenseCategory = "travel"
	ExpenseCategoryShopping      ExpenseCategory = "shopping"
	ExpenseCategoryOther         ExpenseCategory = "other"
)

// Expense represents a shared expense paid by one user and split across
// its participants. GroupID is nil for non-group expenses.
type Expense struct {
	Base
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null;check:amount > 0" json:"amount"`
	Category    ExpenseCategory `gorm:"not null;default:'other'" json:"category"`
	PaidBy      uint            `gorm:"not null" json:"paid_by"`
	GroupID     *uint           `gorm:"index" json:"group_id,omitempty"`
	ExpenseDate time.Time       `gorm:"not null" json:"expense_date"`

	// Relationships
	Payer        User                 `gorm:"foreignKey:PaidBy" json:"payer,omitempty"`
	Group        *Group               `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Participants []ExpenseParticipant `gorm:"foreignKey:ExpenseID" json:"participants,omitempty"`
}

// ExpenseParticipant is one user's share of an expense. Rows are written in
// the same transaction as the expense and never re-split afterwards.
type ExpenseParticipant struct {
	Base
	ExpenseID  uint    `gorm:"not null;uniqueIndex:idx_expense_user" json:"expense_id"`
	UserID     uint    `gorm:"not null;uniqueIndex:idx_expense_user" json:"user_id"`
	AmountOwed float64 `gorm:"not null;check:amount_owed >= 0" json:"amount_owed"`
	IsSettled  bool    `gorm:"not null;default:false" json:"is_settled"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
