package models

import "time"

// Settlement is a directed payment from one user to another. Settlements are
// append-only and independent of the expense ledger: recording one does not
// flip ExpenseParticipant.IsSettled.
type Settlement struct {
	Base
	FromUser    uint      `gorm:"not null;index" json:"from_user"`
	ToUser      uint      `gorm:"not null;index" json:"to_user"`
	Amount      float64   `gorm:"not null;check:amount > 0" json:"amount"`
	GroupID     *uint     `gorm:"index" json:"group_id,omitempty"`
	Description string    `json:"description"`
	SettledAt   time.Time `gorm:"not null" json:"settled_at"`

	Payer *User  `gorm:"foreignKey:FromUser" json:"payer,omitempty"`
	Payee *User  `gorm:"foreignKey:ToUser" json:"payee,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
