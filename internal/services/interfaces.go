package services

import (
	"time"

	"divvy/internal/models"
	"divvy/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// GroupServicer defines the contract for group-related business logic.
type GroupServicer interface {
	CreateGroup(userID uint, name, description string) (*models.Group, error)
	GetUserGroups(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Group], error)
	GetGroupByID(userID, groupID uint) (*models.Group, error)
	AddMember(userID, groupID uint, email string) (*models.GroupMember, error)
	GetGroupMembers(userID, groupID uint) ([]models.GroupMember, error)
	IsMember(groupID, userID uint) (bool, error)
}

// FriendServicer defines the contract for friendship-related business logic.
type FriendServicer interface {
	AddFriend(userID uint, email string) (*models.Friendship, error)
	GetFriends(userID uint) ([]models.User, error)
	GetPendingRequests(userID uint) ([]models.Friendship, error)
	AcceptFriend(userID, friendshipID uint) (*models.Friendship, error)
	DeclineFriend(userID, friendshipID uint) error
	BlockFriend(userID, friendshipID uint) (*models.Friendship, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(payerID uint, description string, amount float64, category models.ExpenseCategory, groupID *uint, date time.Time, participantIDs []uint) (*models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	GetGroupExpenses(userID, groupID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
}

// DashboardSummary contains the derived balance for one user. It is never
// stored: every call recomputes it from unsettled participant rows.
type DashboardSummary struct {
	TotalOwed  float64 `json:"total_owed"`
	TotalOwing float64 `json:"total_owing"`
	NetBalance float64 `json:"net_balance"`
}

// BalanceServicer defines the contract for balance aggregation.
type BalanceServicer interface {
	GetDashboard(userID uint) (*DashboardSummary, error)
}

// CounterpartyBalance is the signed net amount against one other user.
// Positive means they owe the caller, negative means the caller owes them.
type CounterpartyBalance struct {
	UserID   uint    `json:"user_id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Amount   float64 `json:"amount"`
}

// SettlementServicer defines the contract for settle-up business logic.
type SettlementServicer interface {
	GetNetBalances(userID uint) ([]CounterpartyBalance, error)
	RecordSettlement(fromUser, toUser uint, amount float64, groupID *uint, description string, settledAt time.Time) (*models.Settlement, error)
	GetUserSettlements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error)
}

// ActivityServicer defines the contract for the append-only activity log.
type ActivityServicer interface {
	Record(userID uint, activityType models.ActivityType, description string, expenseID, groupID *uint)
	GetUserActivities(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error)
}
